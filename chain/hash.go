package chain

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
)

// PoseidonHashMany hashes elems the way poseidon_hash_span does on chain.
func PoseidonHashMany(elems ...*felt.Felt) *felt.Felt {
	h := crypto.PoseidonArray(elems...)
	b := h.Bytes()
	return new(felt.Felt).SetBytes(b[:])
}

// TokenHash derives the key the orderbook indexes orders by: the Poseidon hash of
// [token_id.low, token_id.high, token_address, token_chain_id].
func TokenHash(tokenChainID, tokenAddress *felt.Felt, tokenID *big.Int) (*felt.Felt, error) {
	if tokenChainID == nil || tokenAddress == nil {
		return nil, fmt.Errorf("token hash: chain id and token address are required")
	}
	id, err := SplitU256(tokenID)
	if err != nil {
		return nil, fmt.Errorf("token hash: %w", err)
	}
	return PoseidonHashMany(id.Low, id.High, tokenAddress, tokenChainID), nil
}

// OrderHash is the Poseidon hash of the serialized order, matching the
// executor's compute_order_hash.
func OrderHash(order *OrderV1) (*felt.Felt, error) {
	data, err := order.Calldata()
	if err != nil {
		return nil, fmt.Errorf("order hash: %w", err)
	}
	return PoseidonHashMany(data...), nil
}
