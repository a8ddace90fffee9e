package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/account"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const blockTagLatest = "latest"

// RPCProvider is a Provider backed by a Starknet JSON-RPC endpoint.
type RPCProvider struct {
	url      string
	provider *rpc.Provider
}

// NewRPCProvider connects to the JSON-RPC endpoint at url.
func NewRPCProvider(ctx context.Context, url string) (*RPCProvider, error) {
	provider, err := rpc.NewProvider(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", url)
	}
	return &RPCProvider{url: url, provider: provider}, nil
}

func (p *RPCProvider) URL() string {
	return p.url
}

func (p *RPCProvider) Call(ctx context.Context, call FunctionCall) ([]*felt.Felt, error) {
	return p.provider.Call(ctx, rpc.FunctionCall{
		ContractAddress:    call.ContractAddress,
		EntryPointSelector: call.EntryPointSelector,
		Calldata:           call.Calldata,
	}, rpc.WithBlockTag(blockTagLatest))
}

func (p *RPCProvider) ChainID(ctx context.Context) (string, error) {
	return p.provider.ChainID(ctx)
}

// ClassABI fetches the class at address and extracts its ABI. Sierra classes
// carry the ABI as a JSON string, Cairo 0 classes as an array.
func (p *RPCProvider) ClassABI(ctx context.Context, address *felt.Felt) (string, error) {
	class, err := p.provider.ClassAt(ctx, rpc.WithBlockTag(blockTagLatest), address)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(class)
	if err != nil {
		return "", errors.Wrap(err, "encode contract class")
	}
	abi := gjson.GetBytes(raw, "abi")
	switch {
	case !abi.Exists():
		return "", nil
	case abi.Type == gjson.String:
		return abi.String(), nil
	default:
		return abi.Raw, nil
	}
}

// StarknetAccount is an Account backed by an on-chain account contract whose
// key is held in memory.
type StarknetAccount struct {
	address *felt.Felt
	account *account.Account
}

// NewStarknetAccount loads a Cairo 1 account. privateKey is a 0x-prefixed hex
// or decimal string.
func NewStarknetAccount(provider *RPCProvider, address, publicKey, privateKey string) (*StarknetAccount, error) {
	addr, err := HexToFelt(address)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account address")
	}
	priv, ok := new(big.Int).SetString(privateKey, 0)
	if !ok {
		return nil, errors.New("invalid account private key")
	}

	ks := account.NewMemKeystore()
	ks.Put(publicKey, priv)

	acct, err := account.NewAccount(provider.provider, addr, publicKey, ks, account.CairoV2)
	if err != nil {
		return nil, errors.Wrap(err, "create starknet account")
	}
	return &StarknetAccount{address: addr, account: acct}, nil
}

func (a *StarknetAccount) Address() *felt.Felt {
	return a.address
}

// Execute signs calls into one invoke transaction and broadcasts it.
func (a *StarknetAccount) Execute(ctx context.Context, calls []Call) (*felt.Felt, error) {
	invokes := make([]rpc.InvokeFunctionCall, 0, len(calls))
	for _, c := range calls {
		invokes = append(invokes, rpc.InvokeFunctionCall{
			ContractAddress: c.ContractAddress,
			FunctionName:    c.Entrypoint,
			CallData:        c.Calldata,
		})
	}
	resp, err := a.account.BuildAndSendInvokeTxn(ctx, invokes, nil)
	if err != nil {
		return nil, err
	}
	return resp.Hash, nil
}

// WaitForTransaction polls the receipt every retryInterval until the
// transaction lands, then reports reverts as *TransactionError.
func (a *StarknetAccount) WaitForTransaction(ctx context.Context, txHash *felt.Felt, retryInterval time.Duration) error {
	receipt, err := a.account.WaitForTransactionReceipt(ctx, txHash, retryInterval)
	if err != nil {
		return errors.Wrapf(err, "wait for transaction %s", txHash)
	}
	if string(receipt.ExecutionStatus) == executionReverted {
		return &TransactionError{TxHash: txHash, Status: executionReverted, Reason: receipt.RevertReason}
	}
	return nil
}
