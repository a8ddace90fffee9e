package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FunctionCall is a view call against a deployed contract.
type FunctionCall struct {
	ContractAddress    *felt.Felt
	EntryPointSelector *felt.Felt
	Calldata           []*felt.Felt
}

// Call is one step of a multicall transaction.
type Call struct {
	ContractAddress *felt.Felt
	Entrypoint      string
	Calldata        []*felt.Felt
}

// Provider is the read side of a Starknet node.
type Provider interface {
	Call(ctx context.Context, call FunctionCall) ([]*felt.Felt, error)
	ChainID(ctx context.Context) (string, error)
	// ClassABI returns the raw ABI JSON of the class deployed at address, or an
	// empty string if the class has none.
	ClassABI(ctx context.Context, address *felt.Felt) (string, error)
}

// Confirmer blocks until a transaction is accepted or fails.
type Confirmer interface {
	WaitForTransaction(ctx context.Context, txHash *felt.Felt, retryInterval time.Duration) error
}

// Account signs and submits transactions. Execute sends all calls as a
// single transaction: either every call takes effect or none does.
type Account interface {
	Confirmer
	Address() *felt.Felt
	Execute(ctx context.Context, calls []Call) (*felt.Felt, error)
}

// TransactionError reports a transaction the network rejected or reverted.
type TransactionError struct {
	TxHash *felt.Felt
	Status string
	Reason string
}

func (e *TransactionError) Error() string {
	hash := "<unknown>"
	if e.TxHash != nil {
		hash = e.TxHash.String()
	}
	if e.Reason == "" {
		return fmt.Sprintf("transaction %s %s", hash, e.Status)
	}
	return fmt.Sprintf("transaction %s %s: %s", hash, e.Status, e.Reason)
}

// ContractCaller runs view calls and transactions against one chain.
type ContractCaller struct {
	provider      Provider
	abis          *ABIResolver
	confirmer     Confirmer
	retryInterval time.Duration
	logger        *zap.Logger
}

// CallerConfig configures a ContractCaller.
type CallerConfig struct {
	ABICacheTTL   time.Duration
	RetryInterval time.Duration
	// Confirmer overrides the account's own receipt polling, e.g. with a
	// websocket watcher.
	Confirmer Confirmer
	Logger    *zap.Logger
}

// NewContractCaller wraps provider. Zero fields of config take their defaults.
func NewContractCaller(provider Provider, config CallerConfig) *ContractCaller {
	if config.RetryInterval <= 0 {
		config.RetryInterval = time.Second
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &ContractCaller{
		provider:      provider,
		abis:          NewABIResolver(provider, config.ABICacheTTL),
		confirmer:     config.Confirmer,
		retryInterval: config.RetryInterval,
		logger:        config.Logger,
	}
}

func (cc *ContractCaller) Provider() Provider {
	return cc.provider
}

func (cc *ContractCaller) ABIs() *ABIResolver {
	return cc.abis
}

// ChainID returns the chain id of the underlying network as a felt.
func (cc *ContractCaller) ChainID(ctx context.Context) (*felt.Felt, error) {
	id, err := cc.provider.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get chain id")
	}
	return ChainIDToFelt(id)
}

// CallView resolves the contract ABI, checks it declares entrypoint and calls it.
func (cc *ContractCaller) CallView(ctx context.Context, contract *felt.Felt, entrypoint string, calldata []*felt.Felt) ([]*felt.Felt, error) {
	abi, err := cc.abis.Resolve(ctx, contract)
	if err != nil {
		return nil, err
	}
	if !abi.Has(entrypoint) {
		return nil, errors.Wrapf(ErrEntrypointNotFound, "%s on %s", entrypoint, contract)
	}

	result, err := cc.provider.Call(ctx, FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: GetSelectorFromName(entrypoint),
		Calldata:           calldata,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "call %s on %s", entrypoint, contract)
	}
	return result, nil
}

// Invoke submits calls as one transaction from account. When wait is set it
// blocks until the transaction is confirmed and returns a *TransactionError if
// it was rejected or reverted.
func (cc *ContractCaller) Invoke(ctx context.Context, account Account, calls []Call, wait bool) (*felt.Felt, error) {
	if len(calls) == 0 {
		return nil, errors.New("invoke: no calls to submit")
	}

	entrypoints := make([]string, 0, len(calls))
	for _, c := range calls {
		entrypoints = append(entrypoints, c.Entrypoint)
	}
	cc.logger.Debug("submitting transaction",
		zap.Stringer("account", account.Address()),
		zap.Strings("entrypoints", entrypoints),
	)

	txHash, err := account.Execute(ctx, calls)
	if err != nil {
		return nil, errors.Wrapf(err, "execute %v", entrypoints)
	}
	cc.logger.Debug("transaction sent", zap.Stringer("tx_hash", txHash))

	if !wait {
		return txHash, nil
	}

	confirmer := cc.confirmer
	if confirmer == nil {
		confirmer = account
	}
	if err := confirmer.WaitForTransaction(ctx, txHash, cc.retryInterval); err != nil {
		return txHash, err
	}
	cc.logger.Debug("transaction confirmed", zap.Stringer("tx_hash", txHash))
	return txHash, nil
}
