package chain

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
)

func testOrder(tokenID *big.Int) *OrderV1 {
	return &OrderV1{
		Route:           RouteErc721ToErc20,
		CurrencyAddress: MustHexToFelt("0xe7"),
		CurrencyChainID: MustHexToFelt("0x534e5f4d41494e"),
		Salt:            MustHexToFelt("0x1234"),
		Offerer:         MustHexToFelt("0xa11ce"),
		TokenChainID:    MustHexToFelt("0x534e5f4d41494e"),
		TokenAddress:    MustHexToFelt("0x7ec"),
		TokenID:         tokenID,
		Quantity:        big.NewInt(1),
		StartAmount:     big.NewInt(600000000000000000),
		EndAmount:       big.NewInt(0),
		StartDate:       1700000000,
		EndDate:         1702592000,
		BrokerID:        MustHexToFelt("0xb40"),
		AdditionalData:  []*felt.Felt{},
	}
}

func TestOrderV1Calldata(t *testing.T) {
	data, err := testOrder(big.NewInt(7)).Calldata()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 20 {
		t.Fatalf("len = %d, want 20", len(data))
	}
	checks := map[int]string{
		0:  "0x1",        // route
		6:  "0x7ec",      // token address
		7:  "0x0",        // Some
		8:  "0x7",        // token id low
		9:  "0x0",        // token id high
		10: "0x1",        // quantity low
		16: "0x6553f100", // start date
		18: "0xb40",      // broker
		19: "0x0",        // additional data length
	}
	for i, want := range checks {
		if got := data[i].String(); got != want {
			t.Errorf("calldata[%d] = %s, want %s", i, got, want)
		}
	}

	collection, err := testOrder(nil).Calldata()
	if err != nil {
		t.Fatal(err)
	}
	if len(collection) != 18 {
		t.Fatalf("collection order len = %d, want 18", len(collection))
	}
	if collection[7].String() != "0x1" {
		t.Errorf("token id should encode as None, got %s", collection[7])
	}
}

func TestOrderV1CalldataMissingField(t *testing.T) {
	o := testOrder(big.NewInt(1))
	o.BrokerID = nil
	if _, err := o.Calldata(); err == nil {
		t.Error("expected error for nil broker")
	}
}

func TestFulfillInfoCalldata(t *testing.T) {
	info := FulfillInfo{
		OrderHash:            MustHexToFelt("0x0d"),
		Fulfiller:            MustHexToFelt("0xb0b"),
		TokenChainID:         MustHexToFelt("0x1"),
		TokenAddress:         MustHexToFelt("0x7ec"),
		TokenID:              big.NewInt(3),
		FulfillBrokerAddress: MustHexToFelt("0xb40"),
	}
	data, err := info.Calldata()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 9 || data[1].String() != "0x1" {
		t.Fatalf("unexpected calldata without related order: %v", data)
	}

	info.RelatedOrderHash = MustHexToFelt("0x0e")
	data, err = info.Calldata()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 10 || data[1].String() != "0x0" || data[2].String() != "0xe" {
		t.Fatalf("unexpected calldata with related order: %v", data)
	}
}

func TestCancelInfoCalldata(t *testing.T) {
	info := CancelInfo{
		OrderHash:    MustHexToFelt("0x0d"),
		Canceller:    MustHexToFelt("0xa11ce"),
		TokenChainID: MustHexToFelt("0x1"),
		TokenAddress: MustHexToFelt("0x7ec"),
	}
	data, err := info.Calldata()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 5 || data[4].String() != "0x1" {
		t.Fatalf("unexpected calldata: %v", data)
	}
}

func TestDecoder(t *testing.T) {
	d := NewDecoder([]*felt.Felt{
		Uint64ToFelt(1), Uint64ToFelt(0),
		Uint64ToFelt(100), Uint64ToFelt(0),
		Uint64ToFelt(5), Uint64ToFelt(0),
	})
	ratio := DecodeFeesRatio(d)
	if d.Err() != nil {
		t.Fatal(d.Err())
	}
	if ratio.Numerator.Int64() != 1 || ratio.Denominator.Int64() != 100 {
		t.Errorf("got %s/%s", ratio.Numerator, ratio.Denominator)
	}
	if d.Remaining() != 2 {
		t.Errorf("remaining = %d", d.Remaining())
	}

	short := NewDecoder([]*felt.Felt{Uint64ToFelt(1)})
	short.U256()
	if short.Err() == nil {
		t.Error("expected error on short input")
	}
}

func TestFeesAmountTotal(t *testing.T) {
	d := NewDecoder([]*felt.Felt{
		Uint64ToFelt(1), Uint64ToFelt(0),
		Uint64ToFelt(2), Uint64ToFelt(0),
		Uint64ToFelt(3), Uint64ToFelt(0),
		Uint64ToFelt(4), Uint64ToFelt(0),
	})
	amount := DecodeFeesAmount(d)
	if d.Err() != nil {
		t.Fatal(d.Err())
	}
	if amount.Total().Int64() != 10 {
		t.Errorf("total = %s", amount.Total())
	}
}

func TestOrderStatusString(t *testing.T) {
	if OrderStatusCancelledUser.String() != "CancelledUser" {
		t.Errorf("got %s", OrderStatusCancelledUser)
	}
	if OrderStatus(42).String() != "Unknown(42)" {
		t.Errorf("got %s", OrderStatus(42))
	}
	if OrderTypeCollectionOffer.String() != "CollectionOffer" {
		t.Errorf("got %s", OrderTypeCollectionOffer)
	}
	if OrderStatusUnknown.String() != "Unknown" {
		t.Errorf("got %s", OrderStatusUnknown)
	}
}

func TestDecodeOrderStatus(t *testing.T) {
	short := func(s string) *felt.Felt {
		f, err := ShortStringToFelt(s)
		if err != nil {
			t.Fatal(err)
		}
		return f
	}
	tests := []struct {
		name string
		in   *felt.Felt
		want OrderStatus
	}{
		{"variant", Uint64ToFelt(2), OrderStatusExecuted},
		{"short string", short("EXECUTED"), OrderStatusExecuted},
		{"snake case", short("CANCELLED_USER"), OrderStatusCancelledUser},
		{"out of range", Uint64ToFelt(42), OrderStatusUnknown},
		{"unknown name", short("PENDING"), OrderStatusUnknown},
		{"nil", nil, OrderStatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeOrderStatus(tt.in); got != tt.want {
				t.Errorf("DecodeOrderStatus = %s, want %s", got, tt.want)
			}
		})
	}

	if got := DecodeOrderType(short("AUCTION")); got != OrderTypeAuction {
		t.Errorf("DecodeOrderType = %s, want Auction", got)
	}
}
