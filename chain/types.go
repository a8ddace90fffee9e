package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
)

// RouteType tells the executor which side of the trade holds the NFT.
type RouteType uint64

const (
	RouteErc20ToErc721 RouteType = iota
	RouteErc721ToErc20
)

func (r RouteType) String() string {
	switch r {
	case RouteErc20ToErc721:
		return "Erc20ToErc721"
	case RouteErc721ToErc20:
		return "Erc721ToErc20"
	default:
		return fmt.Sprintf("RouteType(%d)", uint64(r))
	}
}

// OrderStatus mirrors the orderbook's OrderStatus enum, in declaration order.
type OrderStatus uint64

const (
	OrderStatusOpen OrderStatus = iota
	OrderStatusFulfilled
	OrderStatusExecuted
	OrderStatusCancelledUser
	OrderStatusCancelledByNewOrder
	OrderStatusCancelledAssetFault
	OrderStatusCancelledOwnership

	// OrderStatusUnknown is returned alongside errors and for values the
	// orderbook does not define.
	OrderStatusUnknown OrderStatus = ^OrderStatus(0)
)

var orderStatusNames = []string{
	"Open",
	"Fulfilled",
	"Executed",
	"CancelledUser",
	"CancelledByNewOrder",
	"CancelledAssetFault",
	"CancelledOwnership",
}

func (s OrderStatus) String() string {
	if s == OrderStatusUnknown {
		return "Unknown"
	}
	if int(s) < len(orderStatusNames) {
		return orderStatusNames[s]
	}
	return fmt.Sprintf("Unknown(%d)", uint64(s))
}

// DecodeOrderStatus reads a status returned either as an enum variant index
// or as a short string such as 'EXECUTED' or 'CANCELLED_USER'.
func DecodeOrderStatus(f *felt.Felt) OrderStatus {
	i, ok := decodeEnum(f, orderStatusNames)
	if !ok {
		return OrderStatusUnknown
	}
	return OrderStatus(i)
}

// OrderType mirrors the orderbook's OrderType enum.
type OrderType uint64

const (
	OrderTypeListing OrderType = iota
	OrderTypeAuction
	OrderTypeOffer
	OrderTypeCollectionOffer

	OrderTypeUnknown OrderType = ^OrderType(0)
)

var orderTypeNames = []string{"Listing", "Auction", "Offer", "CollectionOffer"}

func (t OrderType) String() string {
	if t == OrderTypeUnknown {
		return "Unknown"
	}
	if int(t) < len(orderTypeNames) {
		return orderTypeNames[t]
	}
	return fmt.Sprintf("Unknown(%d)", uint64(t))
}

// DecodeOrderType is DecodeOrderStatus for order types.
func DecodeOrderType(f *felt.Felt) OrderType {
	i, ok := decodeEnum(f, orderTypeNames)
	if !ok {
		return OrderTypeUnknown
	}
	return OrderType(i)
}

// decodeEnum maps f to an index of names. Values below len(names) are variant
// indexes; anything else is matched as a short string, ignoring case and
// underscores.
func decodeEnum(f *felt.Felt, names []string) (int, bool) {
	if f == nil {
		return 0, false
	}
	if v := FeltToBig(f); v.IsUint64() && v.Uint64() < uint64(len(names)) {
		return int(v.Uint64()), true
	}
	s := normalizeEnumName(FeltToShortString(f))
	if s == "" {
		return 0, false
	}
	for i, name := range names {
		if normalizeEnumName(name) == s {
			return i, true
		}
	}
	return 0, false
}

func normalizeEnumName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// OrderV1 is the order struct accepted by create_order. Field order is the
// Cairo declaration order and must not change.
type OrderV1 struct {
	Route           RouteType
	CurrencyAddress *felt.Felt
	CurrencyChainID *felt.Felt
	Salt            *felt.Felt
	Offerer         *felt.Felt
	TokenChainID    *felt.Felt
	TokenAddress    *felt.Felt
	TokenID         *big.Int // nil for collection-wide orders
	Quantity        *big.Int
	StartAmount     *big.Int
	EndAmount       *big.Int
	StartDate       uint64
	EndDate         uint64
	BrokerID        *felt.Felt
	AdditionalData  []*felt.Felt
}

func (o *OrderV1) Calldata() ([]*felt.Felt, error) {
	return NewEncoder().
		Enum(uint64(o.Route)).
		Felt(o.CurrencyAddress).
		Felt(o.CurrencyChainID).
		Felt(o.Salt).
		Felt(o.Offerer).
		Felt(o.TokenChainID).
		Felt(o.TokenAddress).
		OptionU256(o.TokenID).
		U256(o.Quantity).
		U256(o.StartAmount).
		U256(o.EndAmount).
		Uint64(o.StartDate).
		Uint64(o.EndDate).
		Felt(o.BrokerID).
		Span(o.AdditionalData).
		Calldata()
}

// FulfillInfo is the argument of fulfill_order.
type FulfillInfo struct {
	OrderHash            *felt.Felt
	RelatedOrderHash     *felt.Felt // set when an auction is closed against an offer
	Fulfiller            *felt.Felt
	TokenChainID         *felt.Felt
	TokenAddress         *felt.Felt
	TokenID              *big.Int
	FulfillBrokerAddress *felt.Felt
}

func (f *FulfillInfo) Calldata() ([]*felt.Felt, error) {
	return NewEncoder().
		Felt(f.OrderHash).
		OptionFelt(f.RelatedOrderHash).
		Felt(f.Fulfiller).
		Felt(f.TokenChainID).
		Felt(f.TokenAddress).
		OptionU256(f.TokenID).
		Felt(f.FulfillBrokerAddress).
		Calldata()
}

// CancelInfo is the argument of cancel_order.
type CancelInfo struct {
	OrderHash    *felt.Felt
	Canceller    *felt.Felt
	TokenChainID *felt.Felt
	TokenAddress *felt.Felt
	TokenID      *big.Int
}

func (c *CancelInfo) Calldata() ([]*felt.Felt, error) {
	return NewEncoder().
		Felt(c.OrderHash).
		Felt(c.Canceller).
		Felt(c.TokenChainID).
		Felt(c.TokenAddress).
		OptionU256(c.TokenID).
		Calldata()
}

// FeesRatio is a numerator/denominator pair as stored by the executor.
type FeesRatio struct {
	Numerator   *big.Int
	Denominator *big.Int
}

func (r FeesRatio) Calldata() ([]*felt.Felt, error) {
	return NewEncoder().U256(r.Numerator).U256(r.Denominator).Calldata()
}

func DecodeFeesRatio(d *Decoder) FeesRatio {
	return FeesRatio{Numerator: d.U256(), Denominator: d.U256()}
}

// FeesAmount is the fee split returned by get_fees_amount.
type FeesAmount struct {
	FulfillBroker *big.Int
	ListingBroker *big.Int
	Ark           *big.Int
	Creator       *big.Int
}

func DecodeFeesAmount(d *Decoder) FeesAmount {
	return FeesAmount{
		FulfillBroker: d.U256(),
		ListingBroker: d.U256(),
		Ark:           d.U256(),
		Creator:       d.U256(),
	}
}

// Total returns the sum of every fee share.
func (f FeesAmount) Total() *big.Int {
	total := new(big.Int)
	for _, v := range []*big.Int{f.FulfillBroker, f.ListingBroker, f.Ark, f.Creator} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}
