package arksdk

import (
	"context"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Client is the main SDK client. It holds no order state: every read goes to
// the chain and every action is independent of the others.
type Client struct {
	config   *Config
	starknet *chain.ContractCaller
	arkchain *chain.ContractCaller
	logger   *zap.Logger

	now  func() time.Time
	salt func() (*felt.Felt, error)
}

// NewClient connects the providers named by config. Providers already set on
// config are used as is.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		return nil, newError(ErrKindConfig, "config is required", docsConfig, nil)
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	starknetProvider := config.StarknetProvider
	if starknetProvider == nil {
		p, err := chain.NewRPCProvider(ctx, config.StarknetRPCURL)
		if err != nil {
			return nil, newError(ErrKindConfig, "failed to create starknet provider", docsConfig, err)
		}
		starknetProvider = p
	}
	arkchainProvider := config.ArkchainProvider
	if arkchainProvider == nil {
		p, err := chain.NewRPCProvider(ctx, config.ArkchainRPCURL)
		if err != nil {
			return nil, newError(ErrKindConfig, "failed to create arkchain provider", docsConfig, err)
		}
		arkchainProvider = p
	}

	var confirmer chain.Confirmer
	if config.StarknetWSURL != "" {
		confirmer = chain.NewTxStatusWatcher(chain.WatcherConfig{
			Endpoint: config.StarknetWSURL,
			Logger:   logger.Named("watcher"),
		})
	}

	return &Client{
		config: config,
		starknet: chain.NewContractCaller(starknetProvider, chain.CallerConfig{
			ABICacheTTL:   config.ABICacheTTL,
			RetryInterval: config.RetryInterval,
			Confirmer:     confirmer,
			Logger:        logger.Named("starknet"),
		}),
		arkchain: chain.NewContractCaller(arkchainProvider, chain.CallerConfig{
			ABICacheTTL:   config.ABICacheTTL,
			RetryInterval: config.RetryInterval,
			Logger:        logger.Named("arkchain"),
		}),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() *Config {
	return c.config
}

// NewAccount loads a Starknet account for signing transactions. It needs a
// client built from RPC URLs rather than injected providers.
func (c *Client) NewAccount(address, publicKey, privateKey string) (chain.Account, error) {
	p, ok := c.starknet.Provider().(*chain.RPCProvider)
	if !ok {
		return nil, newError(ErrKindConfig, "accounts require an RPC-backed starknet provider", docsConfig, nil)
	}
	acct, err := chain.NewStarknetAccount(p, address, publicKey, privateKey)
	if err != nil {
		return nil, newError(ErrKindConfig, "failed to load account", docsConfig, err)
	}
	return acct, nil
}

// chainID resolves the settlement chain id used in orders and order hashes.
func (c *Client) chainID(ctx context.Context) (*felt.Felt, error) {
	id, err := c.starknet.ChainID(ctx)
	if err != nil {
		return nil, remoteError("failed to get chain id", err)
	}
	return id, nil
}

// orderbook returns the caller serving order reads.
func (c *Client) orderbook() *chain.ContractCaller {
	if c.config.OrderbookOnStarknet {
		return c.starknet
	}
	return c.arkchain
}

func (c *Client) orderBuilder(chainID *felt.Felt) *chain.OrderBuilder {
	ob := chain.NewOrderBuilder(chainID).WithClock(c.now)
	if c.salt != nil {
		ob = ob.WithSalt(c.salt)
	}
	return ob
}

// submit runs calls as one transaction from account.
func (c *Client) submit(ctx context.Context, account chain.Account, calls []chain.Call, opts []ActionOption, what string) (*felt.Felt, error) {
	if account == nil || account.Address() == nil {
		return nil, invalidParam("account is required")
	}
	o := resolveOptions(opts)
	txHash, err := c.starknet.Invoke(ctx, account, calls, o.waitForTransaction)
	if err != nil {
		var txErr *chain.TransactionError
		if errors.As(err, &txErr) {
			return txHash, newError(ErrKindTransaction, what+" transaction failed", "", err)
		}
		return txHash, remoteError("failed to "+what, err)
	}
	return txHash, nil
}

// ActionOption tunes a write operation.
type ActionOption func(*actionOptions)

type actionOptions struct {
	waitForTransaction bool
}

// NoWait returns as soon as the transaction is accepted by the node instead
// of waiting for it to be confirmed.
func NoWait() ActionOption {
	return func(o *actionOptions) {
		o.waitForTransaction = false
	}
}

// WaitForTransaction sets whether the call blocks until confirmation.
func WaitForTransaction(wait bool) ActionOption {
	return func(o *actionOptions) {
		o.waitForTransaction = wait
	}
}

func resolveOptions(opts []ActionOption) actionOptions {
	o := actionOptions{waitForTransaction: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
