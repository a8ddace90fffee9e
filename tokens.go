package arksdk

import (
	"context"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

// Token entrypoints.
const (
	entrypointApprove   = "approve"
	entrypointAllowance = "allowance"
	entrypointBalanceOf = "balanceOf"
	entrypointOwnerOf   = "owner_of"
	entrypointMint      = "mint"
)

func erc20ApproveCall(currency, spender *felt.Felt, amount *big.Int) (chain.Call, error) {
	calldata, err := chain.NewEncoder().Felt(spender).U256(amount).Calldata()
	if err != nil {
		return chain.Call{}, invalidParam(err.Error())
	}
	return chain.Call{ContractAddress: currency, Entrypoint: entrypointApprove, Calldata: calldata}, nil
}

func erc721ApproveCall(token, to *felt.Felt, tokenID *big.Int) (chain.Call, error) {
	calldata, err := chain.NewEncoder().Felt(to).U256(tokenID).Calldata()
	if err != nil {
		return chain.Call{}, invalidParam(err.Error())
	}
	return chain.Call{ContractAddress: token, Entrypoint: entrypointApprove, Calldata: calldata}, nil
}

// ApproveERC20 lets the executor spend amount of currency on behalf of account.
func (c *Client) ApproveERC20(ctx context.Context, account chain.Account, info ApproveERC20Info, opts ...ActionOption) (*TransactionResult, error) {
	currency, err := optionalAddress("currencyAddress", info.CurrencyAddress, c.config.CurrencyContract)
	if err != nil {
		return nil, err
	}
	if err := requireAmount("amount", info.Amount); err != nil {
		return nil, err
	}
	call, err := erc20ApproveCall(currency, c.config.ExecutorContract, info.Amount)
	if err != nil {
		return nil, err
	}
	txHash, err := c.submit(ctx, account, []chain.Call{call}, opts, "approve currency")
	if err != nil {
		return nil, err
	}
	return &TransactionResult{TransactionHash: txHash}, nil
}

// ApproveERC721 lets the executor transfer one token on behalf of account.
func (c *Client) ApproveERC721(ctx context.Context, account chain.Account, info ApproveERC721Info, opts ...ActionOption) (*TransactionResult, error) {
	token, err := requireAddress("tokenAddress", info.TokenAddress)
	if err != nil {
		return nil, err
	}
	if err := requireTokenID(info.TokenID); err != nil {
		return nil, err
	}
	call, err := erc721ApproveCall(token, c.config.ExecutorContract, info.TokenID)
	if err != nil {
		return nil, err
	}
	txHash, err := c.submit(ctx, account, []chain.Call{call}, opts, "approve token")
	if err != nil {
		return nil, err
	}
	return &TransactionResult{TransactionHash: txHash}, nil
}

// MintERC721 mints a token to recipient on a test collection exposing
// mint(to, token_uri).
func (c *Client) MintERC721(ctx context.Context, account chain.Account, tokenAddress, recipient, tokenURI string, opts ...ActionOption) (*TransactionResult, error) {
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	to, err := requireAddress("recipient", recipient)
	if err != nil {
		return nil, err
	}
	uri, err := chain.ShortStringToFelt(tokenURI)
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	call := chain.Call{
		ContractAddress: token,
		Entrypoint:      entrypointMint,
		Calldata:        []*felt.Felt{to, uri},
	}
	txHash, err := c.submit(ctx, account, []chain.Call{call}, opts, "mint token")
	if err != nil {
		return nil, err
	}
	return &TransactionResult{TransactionHash: txHash}, nil
}

// GetAllowance returns how much of currency owner lets the executor spend.
func (c *Client) GetAllowance(ctx context.Context, currencyAddress, owner string) (*big.Int, error) {
	currency, err := optionalAddress("currencyAddress", currencyAddress, c.config.CurrencyContract)
	if err != nil {
		return nil, err
	}
	ownerAddr, err := requireAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	return c.allowance(ctx, currency, ownerAddr)
}

func (c *Client) allowance(ctx context.Context, currency, owner *felt.Felt) (*big.Int, error) {
	result, err := c.starknet.CallView(ctx, currency, entrypointAllowance, []*felt.Felt{owner, c.config.ExecutorContract})
	if err != nil {
		return nil, remoteError("failed to get allowance", err)
	}
	return decodeU256(result, "allowance")
}

// GetBalance returns the currency balance of account.
func (c *Client) GetBalance(ctx context.Context, currencyAddress, account string) (*big.Int, error) {
	currency, err := optionalAddress("currencyAddress", currencyAddress, c.config.CurrencyContract)
	if err != nil {
		return nil, err
	}
	accountAddr, err := requireAddress("account", account)
	if err != nil {
		return nil, err
	}
	result, err := c.starknet.CallView(ctx, currency, entrypointBalanceOf, []*felt.Felt{accountAddr})
	if err != nil {
		return nil, remoteError("failed to get balance", err)
	}
	return decodeU256(result, "balance")
}

// GetNFTOwner returns the owner of a token.
func (c *Client) GetNFTOwner(ctx context.Context, tokenAddress string, tokenID *big.Int) (*felt.Felt, error) {
	token, err := requireAddress("tokenAddress", tokenAddress)
	if err != nil {
		return nil, err
	}
	if err := requireTokenID(tokenID); err != nil {
		return nil, err
	}
	calldata, err := chain.NewEncoder().U256(tokenID).Calldata()
	if err != nil {
		return nil, invalidParam(err.Error())
	}
	result, err := c.starknet.CallView(ctx, token, entrypointOwnerOf, calldata)
	if err != nil {
		return nil, remoteError("failed to get token owner", err)
	}
	d := chain.NewDecoder(result)
	owner := d.Felt()
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode token owner", err)
	}
	return owner, nil
}

func decodeU256(result []*felt.Felt, what string) (*big.Int, error) {
	d := chain.NewDecoder(result)
	v := d.U256()
	if err := d.Err(); err != nil {
		return nil, remoteError("failed to decode "+what, err)
	}
	return v, nil
}
