package arksdk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv and AccountsFromEnv.
const (
	EnvNetwork           = "STARKNET_NETWORK"
	EnvStarknetRPCURL    = "STARKNET_RPC_URL"
	EnvStarknetWSURL     = "STARKNET_WS_URL"
	EnvArkchainRPCURL    = "ARKCHAIN_RPC_URL"
	EnvExecutorAddress   = "STARKNET_EXECUTOR_ADDRESS"
	EnvOrderbookAddress  = "ARKCHAIN_ORDERBOOK_ADDRESS"
	EnvCurrencyAddress   = "STARKNET_CURRENCY_ADDRESS"
	envAccountAddressFmt = "STARKNET_ACCOUNT%d_ADDRESS"
	envAccountPubKeyFmt  = "STARKNET_ACCOUNT%d_PUBLIC_KEY"
	envAccountPrivKeyFmt = "STARKNET_ACCOUNT%d_PRIVATE_KEY"
)

// LoadEnv loads dir/.env.local, or dir/.env when the former is missing, into
// the process environment. Missing files are not an error: variables may be
// set directly.
func LoadEnv(dir string) {
	if err := godotenv.Load(filepath.Join(dir, ".env.local")); err != nil {
		_ = godotenv.Load(filepath.Join(dir, ".env"))
	}
}

// ConfigOptionsFromEnv builds ConfigOptions from the environment. Unset
// variables keep the network defaults.
func ConfigOptionsFromEnv() (ConfigOptions, error) {
	opts := ConfigOptions{
		StarknetRPCURL:    os.Getenv(EnvStarknetRPCURL),
		StarknetWSURL:     os.Getenv(EnvStarknetWSURL),
		ArkchainRPCURL:    os.Getenv(EnvArkchainRPCURL),
		ExecutorContract:  os.Getenv(EnvExecutorAddress),
		OrderbookContract: os.Getenv(EnvOrderbookAddress),
		CurrencyContract:  os.Getenv(EnvCurrencyAddress),
	}
	if v := os.Getenv(EnvNetwork); v != "" {
		network, err := ParseNetwork(v)
		if err != nil {
			return ConfigOptions{}, err
		}
		opts.Network = network
	}
	return opts, nil
}

// AccountKeys are the credentials of a Starknet account.
type AccountKeys struct {
	Address    string
	PublicKey  string
	PrivateKey string
}

// AccountFromEnv reads STARKNET_ACCOUNT{n}_ADDRESS, _PUBLIC_KEY and
// _PRIVATE_KEY.
func AccountFromEnv(n int) (AccountKeys, error) {
	keys := AccountKeys{
		Address:    os.Getenv(fmt.Sprintf(envAccountAddressFmt, n)),
		PublicKey:  os.Getenv(fmt.Sprintf(envAccountPubKeyFmt, n)),
		PrivateKey: os.Getenv(fmt.Sprintf(envAccountPrivKeyFmt, n)),
	}
	if keys.Address == "" || keys.PublicKey == "" || keys.PrivateKey == "" {
		return AccountKeys{}, newError(ErrKindConfig,
			fmt.Sprintf("account %d is not fully configured in the environment", n), docsConfig, nil)
	}
	return keys, nil
}
