package arksdk

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// OrderStatus and OrderType are the decoded orderbook enums.
type (
	OrderStatus = chain.OrderStatus
	OrderType   = chain.OrderType
	FeesAmount  = chain.FeesAmount
)

const (
	OrderStatusOpen                = chain.OrderStatusOpen
	OrderStatusFulfilled           = chain.OrderStatusFulfilled
	OrderStatusExecuted            = chain.OrderStatusExecuted
	OrderStatusCancelledUser       = chain.OrderStatusCancelledUser
	OrderStatusCancelledByNewOrder = chain.OrderStatusCancelledByNewOrder
	OrderStatusCancelledAssetFault = chain.OrderStatusCancelledAssetFault
	OrderStatusCancelledOwnership  = chain.OrderStatusCancelledOwnership
	OrderStatusUnknown             = chain.OrderStatusUnknown

	OrderTypeListing         = chain.OrderTypeListing
	OrderTypeAuction         = chain.OrderTypeAuction
	OrderTypeOffer           = chain.OrderTypeOffer
	OrderTypeCollectionOffer = chain.OrderTypeCollectionOffer
	OrderTypeUnknown         = chain.OrderTypeUnknown
)

// ListingV1 offers a token for a fixed price.
type ListingV1 struct {
	BrokerID     string
	TokenAddress string
	TokenID      *big.Int
	StartAmount  *big.Int
	// EndAmount defaults to zero.
	EndAmount *big.Int
	// StartDate and EndDate are unix seconds; zero means now and now + 30 days.
	StartDate int64
	EndDate   int64
	// CurrencyAddress defaults to the configured currency.
	CurrencyAddress string
}

// OfferV1 bids on a specific token.
type OfferV1 struct {
	BrokerID        string
	CurrencyAddress string
	TokenAddress    string
	TokenID         *big.Int
	StartAmount     *big.Int
	StartDate       int64
	EndDate         int64
}

// AuctionV1 lists a token with a reserve (StartAmount) and a buy-now (EndAmount) price.
type AuctionV1 struct {
	BrokerID        string
	TokenAddress    string
	TokenID         *big.Int
	StartAmount     *big.Int
	EndAmount       *big.Int
	StartDate       int64
	EndDate         int64
	CurrencyAddress string
}

// CollectionOfferV1 bids on any token of a collection.
type CollectionOfferV1 struct {
	BrokerID        string
	CurrencyAddress string
	TokenAddress    string
	StartAmount     *big.Int
	StartDate       int64
	EndDate         int64
}

// ApproveERC721Info names the token the executor is allowed to transfer.
type ApproveERC721Info struct {
	TokenAddress string
	TokenID      *big.Int
}

// ApproveERC20Info names the currency amount the executor is allowed to spend.
type ApproveERC20Info struct {
	CurrencyAddress string
	Amount          *big.Int
}

// CancelInfo identifies the order to cancel. TokenID is nil for collection offers.
type CancelInfo struct {
	OrderHash    *felt.Felt
	TokenAddress string
	TokenID      *big.Int
}

// FulfillListingInfo identifies the listing to buy.
type FulfillListingInfo struct {
	OrderHash    *felt.Felt
	TokenAddress string
	TokenID      *big.Int
	BrokerID     string
}

// FulfillOfferInfo identifies the offer (or collection offer) to accept.
type FulfillOfferInfo struct {
	OrderHash    *felt.Felt
	TokenAddress string
	TokenID      *big.Int
	BrokerID     string
}

// FulfillAuctionInfo closes an auction against the winning offer.
type FulfillAuctionInfo struct {
	OrderHash        *felt.Felt
	RelatedOrderHash *felt.Felt
	TokenAddress     string
	TokenID          *big.Int
	BrokerID         string
}

// OrderResult is returned by order creation.
type OrderResult struct {
	OrderHash       *felt.Felt
	TransactionHash *felt.Felt
}

// TransactionResult carries the hash of a submitted invoke.
type TransactionResult struct {
	TransactionHash *felt.Felt
}

// FeesRatio is a numerator/denominator fee. Numerator must not exceed Denominator.
type FeesRatio struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// Fees is a FeesRatio read back from the executor, with the percentage
// pre-formatted to two decimals.
type Fees struct {
	Numerator     *big.Int
	Denominator   *big.Int
	FormattedFees string
}

// CreatorFees are the royalties of a collection and the address receiving them.
type CreatorFees struct {
	Receiver *felt.Felt
	Fees
}
