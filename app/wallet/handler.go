package wallet

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type WalletProvider interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Wallet, error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal, ref string) (*models.Wallet, *models.WalletTransaction, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal, ref string) (*models.Wallet, *models.WalletTransaction, error)
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, note string) (*models.Wallet, *models.WalletTransaction, error)
}

type WalletHandler struct {
	repo   WalletProvider
	logger *zap.Logger
}

func NewWalletHandler(r WalletProvider, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{repo: r, logger: logger}
}

func (h *WalletHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.repo.GetOrCreate(r.Context(), api.UserID(r.Context()))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Wallet not found")
		return
	}
	api.WriteData(w, http.StatusOK, api.Wallet(*wallet))
}

func (h *WalletHandler) decodeOperation(w http.ResponseWriter, r *http.Request) (dto.WalletOperationRequest, bool) {
	var input dto.WalletOperationRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return input, false
	}
	if input.Method != "" && !input.Method.Valid() {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "method: must be one of WALLET, STRIPE, KARTAPAY")
		return input, false
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return input, false
	}
	return input, true
}

func (h *WalletHandler) writeResult(w http.ResponseWriter, wallet *models.Wallet, entry *models.WalletTransaction) {
	api.WriteData(w, http.StatusOK, dto.WalletOperationResult{
		Wallet:      api.Wallet(*wallet),
		Transaction: api.WalletTransaction(*entry),
	})
}

func (h *WalletHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeOperation(w, r)
	if !ok {
		return
	}
	userID := api.UserID(r.Context())
	wallet, entry, err := h.repo.Deposit(r.Context(), userID, input.Amount, uuid.NewString())
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Wallet not found")
		return
	}
	h.logger.Info("wallet deposit",
		zap.String("user_id", userID),
		zap.String("amount", input.Amount.String()),
		zap.String("method", string(input.Method)),
	)
	h.writeResult(w, wallet, entry)
}

func (h *WalletHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeOperation(w, r)
	if !ok {
		return
	}
	userID := api.UserID(r.Context())
	wallet, entry, err := h.repo.Withdraw(r.Context(), userID, input.Amount, uuid.NewString())
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Wallet not found")
		return
	}
	h.logger.Info("wallet withdrawal",
		zap.String("user_id", userID),
		zap.String("amount", input.Amount.String()),
	)
	h.writeResult(w, wallet, entry)
}

func (h *WalletHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var input dto.TransferRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}
	userID := api.UserID(r.Context())
	if input.ToUserID == userID {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "toUserId: cannot transfer to yourself")
		return
	}

	wallet, entry, err := h.repo.Transfer(r.Context(), userID, input.ToUserID, input.Amount, input.Note)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Recipient wallet not found")
		return
	}
	h.logger.Info("wallet transfer",
		zap.String("from_user_id", userID),
		zap.String("to_user_id", input.ToUserID),
		zap.String("amount", input.Amount.String()),
	)
	h.writeResult(w, wallet, entry)
}
