package arksdk

import (
	"context"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// GetOrderHash derives the token hash the orderbook indexes orders by. Only
// the chain id is read remotely; hashing is local and deterministic.
func (c *Client) GetOrderHash(ctx context.Context, tokenAddress string, tokenID *big.Int) (*felt.Felt, error) {
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	if err := requireTokenID(tokenID); err != nil {
		return nil, err
	}
	chainID, err := c.chainID(ctx)
	if err != nil {
		return nil, err
	}
	h, err := chain.TokenHash(chainID, token, tokenID)
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	return h, nil
}
