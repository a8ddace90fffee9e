package arksdk

import (
	"fmt"
	"strings"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"go.uber.org/zap"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Network selects a deployment of the protocol.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkSepolia Network = "sepolia"
	NetworkDev     Network = "dev"
)

// ParseNetwork accepts the network names used in configuration files and env.
// "testnet" is an alias of sepolia.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main":
		return NetworkMainnet, nil
	case "sepolia", "testnet":
		return NetworkSepolia, nil
	case "dev", "devnet", "local":
		return NetworkDev, nil
	}
	return "", newError(ErrKindConfig, fmt.Sprintf("unknown network %q", s), docsConfig, ErrUnknownNetwork)
}

// Token addresses on Starknet.
const (
	ETHAddress  = "0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"
	STRKAddress = "0x04718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"
)

// NetworkURLs holds the RPC endpoints of both chains.
type NetworkURLs struct {
	Starknet string
	Arkchain string
}

// DefaultNetworkURLs maps networks to their public RPC endpoints.
var DefaultNetworkURLs = map[Network]NetworkURLs{
	NetworkMainnet: {
		Starknet: "https://starknet-mainnet.public.blastapi.io",
		Arkchain: "https://solis.arkproject.dev",
	},
	NetworkSepolia: {
		Starknet: "https://starknet-sepolia.public.blastapi.io",
		Arkchain: "https://staging.solis.arkproject.dev",
	},
	NetworkDev: {
		Starknet: "http://0.0.0.0:5050",
		Arkchain: "http://0.0.0.0:7777",
	},
}

// ContractAddresses are the deployments a Client talks to. An empty
// Orderbook means order state is read from the executor on Starknet.
type ContractAddresses struct {
	Executor  string
	Orderbook string
	Currency  string
}

// DefaultContractAddresses maps networks to their canonical deployments. Only
// mainnet ships a default executor; on other networks it must be passed
// explicitly. No network ships a default arkchain orderbook.
var DefaultContractAddresses = map[Network]ContractAddresses{
	NetworkMainnet: {
		Executor: "0x062da0780fae50d68cecaa5a051606dc21217ba290969b302db4dd99d2e9b470",
		Currency: ETHAddress,
	},
	NetworkSepolia: {
		Currency: ETHAddress,
	},
	NetworkDev: {
		Currency: ETHAddress,
	},
}

const (
	DefaultRetryInterval = time.Second
	DefaultABICacheTTL   = 10 * time.Minute
)

// ConfigOptions are the inputs of NewConfig. Zero values fall back to the
// network defaults.
type ConfigOptions struct {
	Network Network

	StarknetRPCURL string
	ArkchainRPCURL string
	// StarknetWSURL enables websocket confirmation instead of receipt polling.
	StarknetWSURL string

	ExecutorContract  string
	OrderbookContract string
	CurrencyContract  string

	// StarknetProvider and ArkchainProvider take precedence over the RPC URLs.
	StarknetProvider chain.Provider
	ArkchainProvider chain.Provider

	RetryInterval time.Duration
	// ABICacheTTL controls how long resolved ABIs are reused. Negative disables caching.
	ABICacheTTL time.Duration

	Logger *zap.Logger
}

// Config is the resolved, immutable configuration of a Client.
type Config struct {
	Network Network

	StarknetRPCURL string
	ArkchainRPCURL string
	StarknetWSURL  string

	ExecutorContract  *felt.Felt
	OrderbookContract *felt.Felt
	CurrencyContract  *felt.Felt
	// OrderbookOnStarknet is set when order reads go to the executor on
	// Starknet rather than to an orderbook on arkchain.
	OrderbookOnStarknet bool

	StarknetProvider chain.Provider
	ArkchainProvider chain.Provider

	RetryInterval time.Duration
	ABICacheTTL   time.Duration

	Logger *zap.Logger
}

// NewConfig resolves opts against the defaults of the selected network. It
// performs no I/O.
func NewConfig(opts ConfigOptions) (*Config, error) {
	network := opts.Network
	if network == "" {
		network = NetworkMainnet
	}
	urls, ok := DefaultNetworkURLs[network]
	if !ok {
		return nil, newError(ErrKindConfig, fmt.Sprintf("unknown network %q", network), docsConfig, ErrUnknownNetwork)
	}
	defaults := DefaultContractAddresses[network]

	if opts.StarknetRPCURL == "" {
		opts.StarknetRPCURL = urls.Starknet
	}
	if opts.ArkchainRPCURL == "" {
		opts.ArkchainRPCURL = urls.Arkchain
	}
	if opts.ExecutorContract == "" {
		opts.ExecutorContract = defaults.Executor
	}
	if opts.OrderbookContract == "" {
		opts.OrderbookContract = defaults.Orderbook
	}
	if opts.CurrencyContract == "" {
		opts.CurrencyContract = defaults.Currency
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.ABICacheTTL == 0 {
		opts.ABICacheTTL = DefaultABICacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	if opts.ExecutorContract == "" {
		return nil, newError(ErrKindConfig,
			fmt.Sprintf("executor contract address is required for network %q", network),
			docsConfig, ErrMissingExecutor)
	}
	if opts.OrderbookContract == "" {
		opts.OrderbookContract = opts.ExecutorContract
	}

	executor, err := parseAddress("executor contract", opts.ExecutorContract)
	if err != nil {
		return nil, err
	}
	orderbook, err := parseAddress("orderbook contract", opts.OrderbookContract)
	if err != nil {
		return nil, err
	}
	currency, err := parseAddress("currency contract", opts.CurrencyContract)
	if err != nil {
		return nil, err
	}

	return &Config{
		Network:             network,
		StarknetRPCURL:      opts.StarknetRPCURL,
		ArkchainRPCURL:      opts.ArkchainRPCURL,
		StarknetWSURL:       opts.StarknetWSURL,
		ExecutorContract:    executor,
		OrderbookContract:   orderbook,
		CurrencyContract:    currency,
		OrderbookOnStarknet: orderbook.Equal(executor),
		StarknetProvider:    opts.StarknetProvider,
		ArkchainProvider:    opts.ArkchainProvider,
		RetryInterval:       opts.RetryInterval,
		ABICacheTTL:         opts.ABICacheTTL,
		Logger:              opts.Logger,
	}, nil
}

func parseAddress(field, value string) (*felt.Felt, error) {
	if value == "" {
		return nil, newError(ErrKindConfig, field+" address is required", docsConfig, ErrMissingContract)
	}
	f, err := chain.HexToFelt(value)
	if err != nil {
		return nil, newError(ErrKindConfig, "invalid "+field+" address", docsConfig, err)
	}
	return f, nil
}
