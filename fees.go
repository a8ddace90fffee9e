package arksdk

import (
	"context"

	"github.com/NethermindEth/juno/core/felt"
	"go.uber.org/zap"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Executor fee entrypoints.
const (
	entrypointSetArkFees               = "set_ark_fees"
	entrypointGetArkFees               = "get_ark_fees"
	entrypointSetBrokerFees            = "set_broker_fees"
	entrypointGetBrokerFees            = "get_broker_fees"
	entrypointSetCollectionCreatorFees = "set_collection_creator_fees"
	entrypointGetCollectionCreatorFees = "get_collection_creator_fees"
	entrypointSetDefaultCreatorFees    = "set_default_creator_fees"
	entrypointGetDefaultCreatorFees    = "get_default_creator_fees"
)

// SetArkFees sets the protocol fee. Only the executor admin may call it.
func (c *Client) SetArkFees(ctx context.Context, account chain.Account, ratio FeesRatio, opts ...ActionOption) (*TransactionResult, error) {
	return c.setFees(ctx, account, entrypointSetArkFees, chain.NewEncoder(), ratio, opts)
}

// SetBrokerFees sets the fee taken by the calling broker account.
func (c *Client) SetBrokerFees(ctx context.Context, account chain.Account, ratio FeesRatio, opts ...ActionOption) (*TransactionResult, error) {
	return c.setFees(ctx, account, entrypointSetBrokerFees, chain.NewEncoder(), ratio, opts)
}

// SetCollectionCreatorFees sets the royalties of one collection.
func (c *Client) SetCollectionCreatorFees(ctx context.Context, account chain.Account, tokenAddress, receiver string, ratio FeesRatio, opts ...ActionOption) (*TransactionResult, error) {
	if err := ValidateFeesRatio(ratio); err != nil {
		return nil, err
	}
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	to, err := requireAddress("receiver", receiver)
	if err != nil {
		return nil, err
	}
	return c.setFees(ctx, account, entrypointSetCollectionCreatorFees, chain.NewEncoder().Felt(token).Felt(to), ratio, opts)
}

// SetDefaultCreatorFees sets the royalties applied to collections without
// their own creator fees.
func (c *Client) SetDefaultCreatorFees(ctx context.Context, account chain.Account, receiver string, ratio FeesRatio, opts ...ActionOption) (*TransactionResult, error) {
	if err := ValidateFeesRatio(ratio); err != nil {
		return nil, err
	}
	to, err := requireAddress("receiver", receiver)
	if err != nil {
		return nil, err
	}
	return c.setFees(ctx, account, entrypointSetDefaultCreatorFees, chain.NewEncoder().Felt(to), ratio, opts)
}

// setFees appends ratio to the arguments already in enc and submits the call
// to the executor. The ratio is validated before anything is sent.
func (c *Client) setFees(ctx context.Context, account chain.Account, entrypoint string, enc *chain.Encoder, ratio FeesRatio, opts []ActionOption) (*TransactionResult, error) {
	if err := ValidateFeesRatio(ratio); err != nil {
		return nil, err
	}
	calldata, err := enc.U256(ratio.Numerator).U256(ratio.Denominator).Calldata()
	if err != nil {
		return nil, newError(ErrKindValidation, "invalid fees", docsFees, err)
	}
	txHash, err := c.submit(ctx, account, []chain.Call{
		{ContractAddress: c.config.ExecutorContract, Entrypoint: entrypoint, Calldata: calldata},
	}, opts, entrypoint)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fees updated",
		zap.String("entrypoint", entrypoint),
		zap.String("numerator", ratio.Numerator.String()),
		zap.String("denominator", ratio.Denominator.String()),
	)
	return &TransactionResult{TransactionHash: txHash}, nil
}

// GetArkFees returns the protocol fee.
func (c *Client) GetArkFees(ctx context.Context) (*Fees, error) {
	result, err := c.readFees(ctx, entrypointGetArkFees, nil)
	if err != nil {
		return nil, err
	}
	d := chain.NewDecoder(result)
	ratio := chain.DecodeFeesRatio(d)
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode ark fees", err)
	}
	fees := toFees(ratio)
	return &fees, nil
}

// GetBrokerFees returns the fee configured by a broker.
func (c *Client) GetBrokerFees(ctx context.Context, brokerAddress string) (*Fees, error) {
	broker, err := requireAddress("brokerAddress", brokerAddress)
	if err != nil {
		return nil, err
	}
	result, err := c.readFees(ctx, entrypointGetBrokerFees, []*felt.Felt{broker})
	if err != nil {
		return nil, err
	}
	d := chain.NewDecoder(result)
	ratio := chain.DecodeFeesRatio(d)
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode broker fees", err)
	}
	fees := toFees(ratio)
	return &fees, nil
}

// GetCollectionCreatorFees returns the royalties of a collection and their receiver.
func (c *Client) GetCollectionCreatorFees(ctx context.Context, tokenAddress string) (*CreatorFees, error) {
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	result, err := c.readFees(ctx, entrypointGetCollectionCreatorFees, []*felt.Felt{token})
	if err != nil {
		return nil, err
	}
	return decodeCreatorFees(result, "collection creator fees")
}

// GetDefaultCreatorFees returns the fallback royalties and their receiver.
func (c *Client) GetDefaultCreatorFees(ctx context.Context) (*CreatorFees, error) {
	result, err := c.readFees(ctx, entrypointGetDefaultCreatorFees, nil)
	if err != nil {
		return nil, err
	}
	return decodeCreatorFees(result, "default creator fees")
}

func (c *Client) readFees(ctx context.Context, entrypoint string, calldata []*felt.Felt) ([]*felt.Felt, error) {
	if calldata == nil {
		calldata = []*felt.Felt{}
	}
	result, err := c.starknet.CallView(ctx, c.config.ExecutorContract, entrypoint, calldata)
	if err != nil {
		return nil, remoteError("failed to call "+entrypoint, err)
	}
	return result, nil
}

func decodeCreatorFees(result []*felt.Felt, what string) (*CreatorFees, error) {
	d := chain.NewDecoder(result)
	receiver := d.Felt()
	ratio := chain.DecodeFeesRatio(d)
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode "+what, err)
	}
	return &CreatorFees{Receiver: receiver, Fees: toFees(ratio)}, nil
}
