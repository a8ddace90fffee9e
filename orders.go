package arksdk

import (
	"context"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"go.uber.org/zap"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Executor entrypoints.
const (
	entrypointCreateOrder  = "create_order"
	entrypointCancelOrder  = "cancel_order"
	entrypointFulfillOrder = "fulfill_order"
)

// CreateListing approves the executor for the token and creates a listing in
// the same transaction.
func (c *Client) CreateListing(ctx context.Context, account chain.Account, listing ListingV1, approve ApproveERC721Info, opts ...ActionOption) (*OrderResult, error) {
	if err := requireTokenID(listing.TokenID); err != nil {
		return nil, err
	}
	if err := requireAmount("startAmount", listing.StartAmount); err != nil {
		return nil, err
	}
	if listing.StartAmount.Sign() == 0 {
		return nil, invalidParam("startAmount must be greater than zero")
	}
	return c.createERC721Order(ctx, account, chain.OrderParams{
		TokenID:     listing.TokenID,
		StartAmount: listing.StartAmount,
		EndAmount:   listing.EndAmount,
		StartDate:   listing.StartDate,
		EndDate:     listing.EndDate,
	}, listing.BrokerID, listing.TokenAddress, listing.CurrencyAddress, approve, opts, "create listing")
}

// CreateAuction approves the executor for the token and creates an auction.
// EndAmount is the buy-now price and must not be below StartAmount.
func (c *Client) CreateAuction(ctx context.Context, account chain.Account, auction AuctionV1, approve ApproveERC721Info, opts ...ActionOption) (*OrderResult, error) {
	if err := requireTokenID(auction.TokenID); err != nil {
		return nil, err
	}
	if err := requireAmount("startAmount", auction.StartAmount); err != nil {
		return nil, err
	}
	if err := requireAmount("endAmount", auction.EndAmount); err != nil {
		return nil, err
	}
	if auction.StartAmount.Sign() == 0 {
		return nil, invalidParam("startAmount must be greater than zero")
	}
	if auction.EndAmount.Cmp(auction.StartAmount) < 0 {
		return nil, invalidParam(fmt.Sprintf("endAmount %s must be greater than or equal to startAmount %s", auction.EndAmount, auction.StartAmount))
	}
	return c.createERC721Order(ctx, account, chain.OrderParams{
		TokenID:     auction.TokenID,
		StartAmount: auction.StartAmount,
		EndAmount:   auction.EndAmount,
		StartDate:   auction.StartDate,
		EndDate:     auction.EndDate,
	}, auction.BrokerID, auction.TokenAddress, auction.CurrencyAddress, approve, opts, "create auction")
}

// createERC721Order submits approve(token) + create_order for orders where
// the offerer sells an NFT.
func (c *Client) createERC721Order(ctx context.Context, account chain.Account, params chain.OrderParams, brokerID, tokenAddress, currencyAddress string, approve ApproveERC721Info, opts []ActionOption, what string) (*OrderResult, error) {
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	var err error
	if params.BrokerID, err = requireAddress("brokerId", brokerID); err != nil {
		return nil, err
	}
	if params.TokenAddress, err = requireAddress("tokenAddress", tokenAddress); err != nil {
		return nil, err
	}
	if params.CurrencyAddress, err = optionalAddress("currencyAddress", currencyAddress, c.config.CurrencyContract); err != nil {
		return nil, err
	}
	if err := c.validateDates(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	approveToken, err := optionalAddress("approve.tokenAddress", approve.TokenAddress, params.TokenAddress)
	if err != nil {
		return nil, err
	}
	approveID := approve.TokenID
	if approveID == nil {
		approveID = params.TokenID
	}
	approveCall, err := erc721ApproveCall(approveToken, c.config.ExecutorContract, approveID)
	if err != nil {
		return nil, err
	}
	params.Route = chain.RouteErc721ToErc20
	params.Offerer = account.Address()

	return c.createOrder(ctx, account, params, approveCall, opts, what)
}

// CreateOffer approves the executor for the offered amount on top of the
// current allowance and creates an offer on one token.
func (c *Client) CreateOffer(ctx context.Context, account chain.Account, offer OfferV1, approve ApproveERC20Info, opts ...ActionOption) (*OrderResult, error) {
	if err := requireTokenID(offer.TokenID); err != nil {
		return nil, err
	}
	return c.createERC20Order(ctx, account, chain.OrderParams{
		TokenID:     offer.TokenID,
		StartAmount: offer.StartAmount,
		StartDate:   offer.StartDate,
		EndDate:     offer.EndDate,
	}, offer.BrokerID, offer.TokenAddress, offer.CurrencyAddress, approve, opts, "create offer")
}

// CreateCollectionOffer creates an offer any holder of the collection can accept.
func (c *Client) CreateCollectionOffer(ctx context.Context, account chain.Account, offer CollectionOfferV1, approve ApproveERC20Info, opts ...ActionOption) (*OrderResult, error) {
	return c.createERC20Order(ctx, account, chain.OrderParams{
		StartAmount: offer.StartAmount,
		StartDate:   offer.StartDate,
		EndDate:     offer.EndDate,
	}, offer.BrokerID, offer.TokenAddress, offer.CurrencyAddress, approve, opts, "create collection offer")
}

func (c *Client) createERC20Order(ctx context.Context, account chain.Account, params chain.OrderParams, brokerID, tokenAddress, currencyAddress string, approve ApproveERC20Info, opts []ActionOption, what string) (*OrderResult, error) {
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	if err := requireAmount("startAmount", params.StartAmount); err != nil {
		return nil, err
	}
	if params.StartAmount.Sign() == 0 {
		return nil, invalidParam("startAmount must be greater than zero")
	}
	var err error
	if params.BrokerID, err = requireAddress("brokerId", brokerID); err != nil {
		return nil, err
	}
	if params.TokenAddress, err = requireAddress("tokenAddress", tokenAddress); err != nil {
		return nil, err
	}
	if params.CurrencyAddress, err = optionalAddress("currencyAddress", currencyAddress, c.config.CurrencyContract); err != nil {
		return nil, err
	}
	if err := c.validateDates(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	approveCurrency, err := optionalAddress("approve.currencyAddress", approve.CurrencyAddress, params.CurrencyAddress)
	if err != nil {
		return nil, err
	}
	amount := approve.Amount
	if amount == nil {
		amount = params.StartAmount
	}
	if err := requireAmount("approve.amount", amount); err != nil {
		return nil, err
	}

	current, err := c.allowance(ctx, approveCurrency, account.Address())
	if err != nil {
		return nil, err
	}
	approveCall, err := erc20ApproveCall(approveCurrency, c.config.ExecutorContract, new(big.Int).Add(current, amount))
	if err != nil {
		return nil, err
	}
	params.Route = chain.RouteErc20ToErc721
	params.Offerer = account.Address()

	return c.createOrder(ctx, account, params, approveCall, opts, what)
}

// validateDates applies the same defaults as the order builder so bad dates
// fail before any network call.
func (c *Client) validateDates(start, end int64) error {
	now := c.now()
	if start == 0 {
		start = now.Unix()
	}
	if end == 0 {
		end = now.Add(chain.DefaultOrderDuration).Unix()
	}
	if start < 0 || end <= start {
		return invalidParam(fmt.Sprintf("endDate %d must be after startDate %d", end, start))
	}
	return nil
}

func (c *Client) createOrder(ctx context.Context, account chain.Account, params chain.OrderParams, approveCall chain.Call, opts []ActionOption, what string) (*OrderResult, error) {
	chainID, err := c.chainID(ctx)
	if err != nil {
		return nil, err
	}
	order, err := c.orderBuilder(chainID).BuildOrder(params)
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	calldata, err := order.Calldata()
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	orderHash, err := chain.OrderHash(order)
	if err != nil {
		return nil, invalidParam(err.Error())
	}

	txHash, err := c.submit(ctx, account, []chain.Call{
		approveCall,
		{ContractAddress: c.config.ExecutorContract, Entrypoint: entrypointCreateOrder, Calldata: calldata},
	}, opts, what)
	if err != nil {
		return nil, err
	}
	c.logger.Info("order created",
		zap.String("kind", what),
		zap.Stringer("order_hash", orderHash),
		zap.Stringer("tx_hash", txHash),
	)
	return &OrderResult{OrderHash: orderHash, TransactionHash: txHash}, nil
}

// CancelOrder cancels an order created by account. TokenID is omitted for
// collection offers.
func (c *Client) CancelOrder(ctx context.Context, account chain.Account, info CancelInfo, opts ...ActionOption) (*TransactionResult, error) {
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	if err := requireOrderHash(info.OrderHash); err != nil {
		return nil, err
	}
	token, err := requireAddress("tokenAddress", info.TokenAddress)
	if err != nil {
		return nil, err
	}
	if info.TokenID != nil && info.TokenID.Sign() < 0 {
		return nil, invalidParam("tokenId must be a non-negative integer")
	}

	chainID, err := c.chainID(ctx)
	if err != nil {
		return nil, err
	}
	cancel := chain.CancelInfo{
		OrderHash:    info.OrderHash,
		Canceller:    account.Address(),
		TokenChainID: chainID,
		TokenAddress: token,
		TokenID:      info.TokenID,
	}
	calldata, err := cancel.Calldata()
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	txHash, err := c.submit(ctx, account, []chain.Call{
		{ContractAddress: c.config.ExecutorContract, Entrypoint: entrypointCancelOrder, Calldata: calldata},
	}, opts, "cancel order")
	if err != nil {
		return nil, err
	}
	return &TransactionResult{TransactionHash: txHash}, nil
}

// FulfillListing buys a listed token: the currency approval and the
// fulfillment are one transaction.
func (c *Client) FulfillListing(ctx context.Context, account chain.Account, info FulfillListingInfo, approve ApproveERC20Info, opts ...ActionOption) (*TransactionResult, error) {
	if err := requireTokenID(info.TokenID); err != nil {
		return nil, err
	}
	if err := requireAmount("approve.amount", approve.Amount); err != nil {
		return nil, err
	}
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	if err := requireOrderHash(info.OrderHash); err != nil {
		return nil, err
	}
	currency, err := optionalAddress("approve.currencyAddress", approve.CurrencyAddress, c.config.CurrencyContract)
	if err != nil {
		return nil, err
	}
	// Other pending approvals of the buyer stay covered.
	current, err := c.allowance(ctx, currency, account.Address())
	if err != nil {
		return nil, err
	}
	approveCall, err := erc20ApproveCall(currency, c.config.ExecutorContract, new(big.Int).Add(current, approve.Amount))
	if err != nil {
		return nil, err
	}
	return c.fulfill(ctx, account, info.OrderHash, nil, info.TokenAddress, info.TokenID, info.BrokerID, &approveCall, opts, "fulfill listing")
}

// FulfillOffer sells a token into an offer. For collection offers TokenID is
// the token the fulfiller chooses to sell.
func (c *Client) FulfillOffer(ctx context.Context, account chain.Account, info FulfillOfferInfo, approve ApproveERC721Info, opts ...ActionOption) (*TransactionResult, error) {
	if err := requireTokenID(info.TokenID); err != nil {
		return nil, err
	}
	tokenAddress := approve.TokenAddress
	if tokenAddress == "" {
		tokenAddress = info.TokenAddress
	}
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	approveID := approve.TokenID
	if approveID == nil {
		approveID = info.TokenID
	}
	approveCall, err := erc721ApproveCall(token, c.config.ExecutorContract, approveID)
	if err != nil {
		return nil, err
	}
	return c.fulfill(ctx, account, info.OrderHash, nil, info.TokenAddress, info.TokenID, info.BrokerID, &approveCall, opts, "fulfill offer")
}

// FulfillAuction closes an auction by matching it with the chosen offer. The
// token was approved when the auction was created.
func (c *Client) FulfillAuction(ctx context.Context, account chain.Account, info FulfillAuctionInfo, opts ...ActionOption) (*TransactionResult, error) {
	if err := requireTokenID(info.TokenID); err != nil {
		return nil, err
	}
	if err := requireOrderHash(info.RelatedOrderHash); err != nil {
		return nil, invalidParam("relatedOrderHash is required")
	}
	return c.fulfill(ctx, account, info.OrderHash, info.RelatedOrderHash, info.TokenAddress, info.TokenID, info.BrokerID, nil, opts, "fulfill auction")
}

func (c *Client) fulfill(ctx context.Context, account chain.Account, orderHash, relatedOrderHash *felt.Felt, tokenAddress string, tokenID *big.Int, brokerID string, approveCall *chain.Call, opts []ActionOption, what string) (*TransactionResult, error) {
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	if err := requireOrderHash(orderHash); err != nil {
		return nil, err
	}
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	broker, err := requireAddress("brokerId", brokerID)
	if err != nil {
		return nil, err
	}

	chainID, err := c.chainID(ctx)
	if err != nil {
		return nil, err
	}
	info := chain.FulfillInfo{
		OrderHash:            orderHash,
		RelatedOrderHash:     relatedOrderHash,
		Fulfiller:            account.Address(),
		TokenChainID:         chainID,
		TokenAddress:         token,
		TokenID:              tokenID,
		FulfillBrokerAddress: broker,
	}
	calldata, err := info.Calldata()
	if err != nil {
		return nil, invalidParam(err.Error())
	}

	calls := make([]chain.Call, 0, 2)
	if approveCall != nil {
		calls = append(calls, *approveCall)
	}
	calls = append(calls, chain.Call{ContractAddress: c.config.ExecutorContract, Entrypoint: entrypointFulfillOrder, Calldata: calldata})

	txHash, err := c.submit(ctx, account, calls, opts, what)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{TransactionHash: txHash}, nil
}
