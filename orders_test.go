package arksdk

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

const snMain = "0x534e5f4d41494e"

func testListing() ListingV1 {
	return ListingV1{
		BrokerID:     testBroker,
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		StartAmount:  big.NewInt(600),
	}
}

func TestCreateListing(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")

	res, err := env.client.CreateListing(context.Background(), seller, testListing(),
		ApproveERC721Info{TokenAddress: testToken, TokenID: big.NewInt(7)})
	if err != nil {
		t.Fatal(err)
	}

	batch := seller.lastBatch(t)
	if len(batch) != 2 {
		t.Fatalf("batch has %d calls", len(batch))
	}
	if batch[0].Entrypoint != "approve" || batch[0].ContractAddress.String() != testToken {
		t.Errorf("first call %s on %s", batch[0].Entrypoint, batch[0].ContractAddress)
	}
	feltsEqual(t, batch[0].Calldata, testExecutor, "0x7", "0x0")

	create := batch[1]
	if create.Entrypoint != "create_order" || create.ContractAddress.String() != testExecutor {
		t.Errorf("second call %s on %s", create.Entrypoint, create.ContractAddress)
	}
	feltsEqual(t, create.Calldata,
		"0x1",               // route Erc721ToErc20
		testCurrency,        // currency
		snMain,              // currency chain
		"0x5a17",            // salt
		"0xa11ce",           // offerer
		snMain,              // token chain
		testToken,           // token
		"0x0", "0x7", "0x0", // Some(7)
		"0x1", "0x0", // quantity
		"0x258", "0x0", // start amount
		"0x0", "0x0", // end amount
		"0x6553f100", // start date
		"0x657b7e00", // end date, 30 days later
		testBroker,
		"0x0", // additional data
	)

	if want := chain.PoseidonHashMany(create.Calldata...); !res.OrderHash.Equal(want) {
		t.Errorf("order hash %s, want %s", res.OrderHash, want)
	}
	if res.TransactionHash == nil {
		t.Error("missing transaction hash")
	}
	if seller.waited != 1 {
		t.Errorf("waited %d times", seller.waited)
	}
	if n := env.starknet.callCount(); n != 0 {
		t.Errorf("listing made %d view calls", n)
	}
}

func TestCreateListingNoWait(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")

	res, err := env.client.CreateListing(context.Background(), seller, testListing(), ApproveERC721Info{}, NoWait())
	if err != nil {
		t.Fatal(err)
	}
	if seller.waited != 0 {
		t.Error("NoWait still waited for the transaction")
	}
	if res.TransactionHash == nil {
		t.Error("missing transaction hash")
	}
}

func TestCreateListingValidation(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")

	tests := map[string]func(*ListingV1){
		"missing broker":   func(l *ListingV1) { l.BrokerID = "" },
		"missing token":    func(l *ListingV1) { l.TokenAddress = "" },
		"missing token id": func(l *ListingV1) { l.TokenID = nil },
		"negative amount":  func(l *ListingV1) { l.StartAmount = big.NewInt(-1) },
		"zero amount":      func(l *ListingV1) { l.StartAmount = big.NewInt(0) },
		"end before start": func(l *ListingV1) { l.StartDate, l.EndDate = 2000, 1000 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			l := testListing()
			mutate(&l)
			_, err := env.client.CreateListing(context.Background(), seller, l, ApproveERC721Info{})
			if !errors.Is(err, ErrInvalidParam) || !IsKind(err, ErrKindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
	if len(seller.executed) != 0 {
		t.Errorf("%d transactions sent for invalid listings", len(seller.executed))
	}
}

func TestCreateAuction(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")
	auction := AuctionV1{
		BrokerID:     testBroker,
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		StartAmount:  big.NewInt(10),
		EndAmount:    big.NewInt(5),
	}

	if _, err := env.client.CreateAuction(context.Background(), seller, auction, ApproveERC721Info{}); !IsKind(err, ErrKindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	if len(seller.executed) != 0 {
		t.Fatal("invalid auction was submitted")
	}

	auction.EndAmount = big.NewInt(20)
	if _, err := env.client.CreateAuction(context.Background(), seller, auction, ApproveERC721Info{}); err != nil {
		t.Fatal(err)
	}
	create := seller.lastBatch(t)[1].Calldata
	if create[14].String() != "0x14" {
		t.Errorf("end amount %s", create[14])
	}
}

func TestCreateOffer(t *testing.T) {
	env := newTestEnv(t)
	env.starknet.respond("allowance", 50, 0)
	buyer := newFakeAccount("0xb0b")

	_, err := env.client.CreateOffer(context.Background(), buyer, OfferV1{
		BrokerID:     testBroker,
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		StartAmount:  big.NewInt(100),
	}, ApproveERC20Info{})
	if err != nil {
		t.Fatal(err)
	}

	batch := buyer.lastBatch(t)
	if batch[0].ContractAddress.String() != testCurrency {
		t.Errorf("approve sent to %s", batch[0].ContractAddress)
	}
	// existing allowance plus the offer amount
	feltsEqual(t, batch[0].Calldata, testExecutor, "0x96", "0x0")
	if batch[1].Calldata[0].String() != "0x0" {
		t.Errorf("route %s, want Erc20ToErc721", batch[1].Calldata[0])
	}

	allowance := env.starknet.calls[0]
	feltsEqual(t, allowance.Calldata, "0xb0b", testExecutor)
}

func TestCreateCollectionOffer(t *testing.T) {
	env := newTestEnv(t)
	env.starknet.respond("allowance", 0, 0)
	buyer := newFakeAccount("0xb0b")

	_, err := env.client.CreateCollectionOffer(context.Background(), buyer, CollectionOfferV1{
		BrokerID:     testBroker,
		TokenAddress: testToken,
		StartAmount:  big.NewInt(100),
	}, ApproveERC20Info{})
	if err != nil {
		t.Fatal(err)
	}
	create := buyer.lastBatch(t)[1].Calldata
	if len(create) != 18 || create[7].String() != "0x1" {
		t.Errorf("collection offer should carry no token id: %v", create)
	}
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")

	_, err := env.client.CancelOrder(context.Background(), seller, CancelInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
	})
	if err != nil {
		t.Fatal(err)
	}
	batch := seller.lastBatch(t)
	if len(batch) != 1 || batch[0].Entrypoint != "cancel_order" {
		t.Fatalf("unexpected batch %+v", batch)
	}
	feltsEqual(t, batch[0].Calldata, "0xd", "0xa11ce", snMain, testToken, "0x0", "0x7", "0x0")

	if _, err := env.client.CancelOrder(context.Background(), seller, CancelInfo{TokenAddress: testToken}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("got %v, want ErrInvalidParam", err)
	}
}

func TestFulfillListing(t *testing.T) {
	env := newTestEnv(t)
	env.starknet.respond("allowance", 0, 0)
	buyer := newFakeAccount("0xb0b")

	_, err := env.client.FulfillListing(context.Background(), buyer, FulfillListingInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		BrokerID:     testBroker,
	}, ApproveERC20Info{Amount: big.NewInt(600)})
	if err != nil {
		t.Fatal(err)
	}
	batch := buyer.lastBatch(t)
	if len(batch) != 2 {
		t.Fatalf("batch has %d calls", len(batch))
	}
	if batch[0].ContractAddress.String() != testCurrency {
		t.Errorf("approve sent to %s", batch[0].ContractAddress)
	}
	feltsEqual(t, batch[0].Calldata, testExecutor, "0x258", "0x0")
	if batch[1].Entrypoint != "fulfill_order" {
		t.Errorf("second call %s", batch[1].Entrypoint)
	}
	feltsEqual(t, batch[1].Calldata, "0xd", "0x1", "0xb0b", snMain, testToken, "0x0", "0x7", "0x0", testBroker)
}

func TestFulfillListingKeepsAllowance(t *testing.T) {
	env := newTestEnv(t)
	env.starknet.respond("allowance", 5, 0)
	buyer := newFakeAccount("0xb0b")

	_, err := env.client.FulfillListing(context.Background(), buyer, FulfillListingInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		BrokerID:     testBroker,
	}, ApproveERC20Info{Amount: big.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	// existing allowance plus the listing price
	feltsEqual(t, buyer.lastBatch(t)[0].Calldata, testExecutor, "0x6", "0x0")
	feltsEqual(t, env.starknet.calls[0].Calldata, "0xb0b", testExecutor)
}

func TestFulfillOffer(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")

	_, err := env.client.FulfillOffer(context.Background(), seller, FulfillOfferInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		BrokerID:     testBroker,
	}, ApproveERC721Info{})
	if err != nil {
		t.Fatal(err)
	}
	batch := seller.lastBatch(t)
	if batch[0].ContractAddress.String() != testToken {
		t.Errorf("approve sent to %s", batch[0].ContractAddress)
	}
	feltsEqual(t, batch[0].Calldata, testExecutor, "0x7", "0x0")
	if batch[1].Calldata[2].String() != "0xa11ce" {
		t.Errorf("fulfiller %s", batch[1].Calldata[2])
	}
}

func TestFulfillAuction(t *testing.T) {
	env := newTestEnv(t)
	seller := newFakeAccount("0xa11ce")
	info := FulfillAuctionInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		BrokerID:     testBroker,
	}

	if _, err := env.client.FulfillAuction(context.Background(), seller, info); !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("got %v, want ErrInvalidParam", err)
	}

	info.RelatedOrderHash = chain.MustHexToFelt("0xe")
	if _, err := env.client.FulfillAuction(context.Background(), seller, info); err != nil {
		t.Fatal(err)
	}
	batch := seller.lastBatch(t)
	if len(batch) != 1 {
		t.Fatalf("auction fulfillment should not approve, got %d calls", len(batch))
	}
	feltsEqual(t, batch[0].Calldata, "0xd", "0x0", "0xe", "0xa11ce", snMain, testToken, "0x0", "0x7", "0x0", testBroker)
}

func TestActionTransactionFailure(t *testing.T) {
	env := newTestEnv(t)
	buyer := newFakeAccount("0xb0b")
	buyer.waitErr = &chain.TransactionError{Status: "REVERTED", Reason: "ERC20: insufficient allowance"}
	env.starknet.respond("allowance", 0, 0)

	_, err := env.client.FulfillListing(context.Background(), buyer, FulfillListingInfo{
		OrderHash:    chain.MustHexToFelt("0xd"),
		TokenAddress: testToken,
		TokenID:      big.NewInt(7),
		BrokerID:     testBroker,
	}, ApproveERC20Info{Amount: big.NewInt(1)})
	if !IsKind(err, ErrKindTransaction) {
		t.Fatalf("got %v, want transaction error", err)
	}
	var txErr *chain.TransactionError
	if !errors.As(err, &txErr) || txErr.Reason != "ERC20: insufficient allowance" {
		t.Errorf("revert reason lost: %v", err)
	}
}

func TestActionRequiresAccount(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.client.CreateListing(context.Background(), nil, testListing(), ApproveERC721Info{}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("got %v, want ErrInvalidParam", err)
	}
}
