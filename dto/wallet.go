package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TxDeposit     TransactionKind = "DEPOSIT"
	TxWithdrawal  TransactionKind = "WITHDRAWAL"
	TxTransferIn  TransactionKind = "TRANSFER_IN"
	TxTransferOut TransactionKind = "TRANSFER_OUT"
	TxPayment     TransactionKind = "PAYMENT"
)

type Wallet struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type WalletTransaction struct {
	ID        string          `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type WalletOperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
}

func (r WalletOperationRequest) Validate() error {
	var v ValidationError
	if !r.Amount.IsPositive() {
		v.add("amount", "must be positive")
	}
	if r.Method == PaymentKartaPay && !ValidPhone(r.PhoneNumber) {
		v.add("phoneNumber", "invalid phone number")
	}
	return v.orNil()
}

type TransferRequest struct {
	ToUserID string          `json:"toUserId"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note,omitempty"`
}

func (r TransferRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.ToUserID) == "" {
		v.add("toUserId", "required")
	}
	if !r.Amount.IsPositive() {
		v.add("amount", "must be positive")
	}
	return v.orNil()
}

type WalletOperationResult struct {
	Wallet      Wallet            `json:"wallet"`
	Transaction WalletTransaction `json:"transaction"`
}
