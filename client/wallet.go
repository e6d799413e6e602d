package client

import (
	"context"
	"net/http"

	"github.com/komoralink/komora/dto"
)

func (c *Client) GetWallet(ctx context.Context) (dto.Wallet, error) {
	return getData[dto.Wallet](ctx, c, http.MethodGet, "/wallet", nil, nil)
}

func (c *Client) Deposit(ctx context.Context, req dto.WalletOperationRequest) (dto.WalletOperationResult, error) {
	if err := req.Validate(); err != nil {
		return dto.WalletOperationResult{}, err
	}
	return getData[dto.WalletOperationResult](ctx, c, http.MethodPost, "/wallet/deposit", nil, req)
}

func (c *Client) Withdraw(ctx context.Context, req dto.WalletOperationRequest) (dto.WalletOperationResult, error) {
	if err := req.Validate(); err != nil {
		return dto.WalletOperationResult{}, err
	}
	return getData[dto.WalletOperationResult](ctx, c, http.MethodPost, "/wallet/withdraw", nil, req)
}

func (c *Client) Transfer(ctx context.Context, req dto.TransferRequest) (dto.WalletOperationResult, error) {
	if err := req.Validate(); err != nil {
		return dto.WalletOperationResult{}, err
	}
	return getData[dto.WalletOperationResult](ctx, c, http.MethodPost, "/wallet/transfer", nil, req)
}
