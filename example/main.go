// Example usage of the Ark SDK: mint a token, list it, set broker fees and
// buy it from a second account.
//
// Configuration is read from .env.local or .env: see arksdk.Env* and
// STARKNET_ACCOUNT{1,2,3}_* for the seller, buyer and broker accounts, and
// NFT_CONTRACT_ADDRESS and NFT_TOKEN_ID for a collection exposing
// mint(to, token_uri).
package main

import (
	"context"
	"math/big"
	"os"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	arksdk "github.com/ArkProjectNFTs/ark-project-sub001"
	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("example failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	arksdk.LoadEnv(".")
	opts, err := arksdk.ConfigOptionsFromEnv()
	if err != nil {
		return err
	}
	opts.Logger = logger
	config, err := arksdk.NewConfig(opts)
	if err != nil {
		return err
	}
	client, err := arksdk.NewClient(ctx, config)
	if err != nil {
		return err
	}

	seller, err := loadAccount(client, 1)
	if err != nil {
		return err
	}
	buyer, err := loadAccount(client, 2)
	if err != nil {
		return err
	}
	broker, err := loadAccount(client, 3)
	if err != nil {
		logger.Info("no broker account configured, seller acts as broker")
		broker = seller
	}

	nft := os.Getenv("NFT_CONTRACT_ADDRESS")
	tokenID, ok := new(big.Int).SetString(os.Getenv("NFT_TOKEN_ID"), 0)
	if !ok {
		return errors.New("NFT_TOKEN_ID must be set to the token to trade")
	}
	sellerAddr := seller.Address().String()
	brokerAddr := broker.Address().String()

	// The token is minted when the seller does not hold it yet; sequential
	// collections assign NFT_TOKEN_ID to the next mint.
	if owner, err := client.GetNFTOwner(ctx, nft, tokenID); err != nil || !owner.Equal(seller.Address()) {
		if _, err := client.MintERC721(ctx, seller, nft, sellerAddr, "ipfs://ark"); err != nil {
			return err
		}
		logger.Info("token minted", zap.String("token_id", tokenID.String()))
	}

	if _, err := client.SetBrokerFees(ctx, broker, arksdk.FeesRatio{
		Numerator:   big.NewInt(1),
		Denominator: big.NewInt(100),
	}); err != nil {
		return err
	}
	fees, err := client.GetBrokerFees(ctx, brokerAddr)
	if err != nil {
		return err
	}
	logger.Info("broker fees", zap.String("percent", fees.FormattedFees))

	price := big.NewInt(1)
	sellerBefore, err := client.GetBalance(ctx, "", sellerAddr)
	if err != nil {
		return err
	}

	listing, err := client.CreateListing(ctx, seller, arksdk.ListingV1{
		BrokerID:     brokerAddr,
		TokenAddress: nft,
		TokenID:      tokenID,
		StartAmount:  price,
	}, arksdk.ApproveERC721Info{TokenAddress: nft, TokenID: tokenID})
	if err != nil {
		return err
	}
	logger.Info("listing created",
		zap.Stringer("order_hash", listing.OrderHash),
		zap.Stringer("tx_hash", listing.TransactionHash),
	)

	if _, err := client.FulfillListing(ctx, buyer, arksdk.FulfillListingInfo{
		OrderHash:    listing.OrderHash,
		TokenAddress: nft,
		TokenID:      tokenID,
		BrokerID:     brokerAddr,
	}, arksdk.ApproveERC20Info{Amount: price}); err != nil {
		return err
	}

	status, err := waitForStatus(ctx, client, listing.OrderHash, arksdk.OrderStatusExecuted)
	if err != nil {
		return err
	}
	sellerAfter, err := client.GetBalance(ctx, "", sellerAddr)
	if err != nil {
		return err
	}
	owner, err := client.GetNFTOwner(ctx, nft, tokenID)
	if err != nil {
		return err
	}
	logger.Info("listing fulfilled",
		zap.Stringer("status", status),
		zap.String("seller_received", new(big.Int).Sub(sellerAfter, sellerBefore).String()),
		zap.Bool("buyer_owns_token", owner.Equal(buyer.Address())),
	)
	return nil
}

func loadAccount(client *arksdk.Client, n int) (chain.Account, error) {
	keys, err := arksdk.AccountFromEnv(n)
	if err != nil {
		return nil, err
	}
	return client.NewAccount(keys.Address, keys.PublicKey, keys.PrivateKey)
}

// waitForStatus polls the orderbook, which indexes executor events with a delay.
func waitForStatus(ctx context.Context, client *arksdk.Client, orderHash *felt.Felt, want arksdk.OrderStatus) (arksdk.OrderStatus, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		status, err := client.GetOrderStatus(ctx, orderHash)
		if err == nil && status == want {
			return status, nil
		}
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}
