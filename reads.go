package arksdk

import (
	"context"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/pkg/errors"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Orderbook view entrypoints.
const (
	entrypointGetOrderStatus = "get_order_status"
	entrypointGetOrderType   = "get_order_type"
	entrypointGetOrderSigner = "get_order_signer"
	entrypointGetOrderHash   = "get_order_hash"
	entrypointGetFeesAmount  = "get_fees_amount"
)

// GetOrderStatus returns the current status of an order. On error the
// status is OrderStatusUnknown, never a real variant.
func (c *Client) GetOrderStatus(ctx context.Context, orderHash *felt.Felt) (OrderStatus, error) {
	v, err := c.readOrderEnum(ctx, orderHash, entrypointGetOrderStatus, "order status")
	if err != nil {
		return OrderStatusUnknown, err
	}
	status := chain.DecodeOrderStatus(v)
	if status == OrderStatusUnknown {
		return status, remoteError("failed to decode order status", errors.Errorf("unknown order status %s", v))
	}
	return status, nil
}

// GetOrderType returns whether an order is a listing, auction, offer or
// collection offer. On error the type is OrderTypeUnknown.
func (c *Client) GetOrderType(ctx context.Context, orderHash *felt.Felt) (OrderType, error) {
	v, err := c.readOrderEnum(ctx, orderHash, entrypointGetOrderType, "order type")
	if err != nil {
		return OrderTypeUnknown, err
	}
	orderType := chain.DecodeOrderType(v)
	if orderType == OrderTypeUnknown {
		return orderType, remoteError("failed to decode order type", errors.Errorf("unknown order type %s", v))
	}
	return orderType, nil
}

func (c *Client) readOrderEnum(ctx context.Context, orderHash *felt.Felt, entrypoint, what string) (*felt.Felt, error) {
	if err := requireOrderHash(orderHash); err != nil {
		return nil, err
	}
	result, err := c.orderbook().CallView(ctx, c.config.OrderbookContract, entrypoint, []*felt.Felt{orderHash})
	if err != nil {
		return nil, remoteError("failed to get "+what, err)
	}
	d := chain.NewDecoder(result)
	v := d.Felt()
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode "+what, err)
	}
	return v, nil
}

// GetOrderSigner returns the public key that signed an order.
func (c *Client) GetOrderSigner(ctx context.Context, orderHash *felt.Felt) (*felt.Felt, error) {
	if err := requireOrderHash(orderHash); err != nil {
		return nil, err
	}
	result, err := c.orderbook().CallView(ctx, c.config.OrderbookContract, entrypointGetOrderSigner, []*felt.Felt{orderHash})
	if err != nil {
		return nil, remoteError("failed to get order signer", err)
	}
	d := chain.NewDecoder(result)
	signer := d.Felt()
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode order signer", err)
	}
	return signer, nil
}

// GetOrderHashByToken asks the orderbook for the order currently attached to a
// token. A zero hash means the token has no order.
func (c *Client) GetOrderHashByToken(ctx context.Context, tokenAddress string, tokenID *big.Int) (*felt.Felt, error) {
	tokenHash, err := c.GetOrderHash(ctx, tokenAddress, tokenID)
	if err != nil {
		return nil, err
	}
	result, err := c.orderbook().CallView(ctx, c.config.OrderbookContract, entrypointGetOrderHash, []*felt.Felt{tokenHash})
	if err != nil {
		return nil, remoteError("failed to get order hash", err)
	}
	d := chain.NewDecoder(result)
	orderHash := d.Felt()
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode order hash", err)
	}
	return orderHash, nil
}

// FeesAmountInfo describes a sale for which the fee split is computed.
type FeesAmountInfo struct {
	FulfillBroker string
	ListingBroker string
	TokenAddress  string
	TokenID       *big.Int
	PaymentAmount *big.Int
}

// GetFeesAmount returns how a sale of PaymentAmount would be split between
// brokers, the protocol and the creator.
func (c *Client) GetFeesAmount(ctx context.Context, info FeesAmountInfo) (*FeesAmount, error) {
	fulfillBroker, err := requireAddress("fulfillBroker", info.FulfillBroker)
	if err != nil {
		return nil, err
	}
	listingBroker, err := requireAddress("listingBroker", info.ListingBroker)
	if err != nil {
		return nil, err
	}
	token, err := requireAddress("tokenAddress", info.TokenAddress)
	if err != nil {
		return nil, err
	}
	if err := requireTokenID(info.TokenID); err != nil {
		return nil, err
	}
	if err := requireAmount("paymentAmount", info.PaymentAmount); err != nil {
		return nil, err
	}
	calldata, err := chain.NewEncoder().
		Felt(fulfillBroker).
		Felt(listingBroker).
		Felt(token).
		U256(info.TokenID).
		U256(info.PaymentAmount).
		Calldata()
	if err != nil {
		return nil, invalidParam(err.Error())
	}

	result, err := c.starknet.CallView(ctx, c.config.ExecutorContract, entrypointGetFeesAmount, calldata)
	if err != nil {
		return nil, remoteError("failed to get fees amount", err)
	}
	d := chain.NewDecoder(result)
	amount := chain.DecodeFeesAmount(d)
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode fees amount", err)
	}
	return &amount, nil
}
