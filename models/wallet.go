package models

import (
	"github.com/shopspring/decimal"

	"github.com/komoralink/komora/dto"
)

// Wallet is the single balance of a user, shared by every business the user owns.
type Wallet struct {
	Base
	UserID   string          `gorm:"type:uuid;uniqueIndex;not null"`
	Balance  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Currency string          `gorm:"type:varchar(3);not null;default:'XAF'"`
}

func (w *Wallet) TableName() string {
	return "wallets"
}

type WalletTransaction struct {
	Base
	WalletID  string              `gorm:"type:uuid;index;not null"`
	Kind      dto.TransactionKind `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal     `gorm:"type:decimal(14,2);not null"`
	Reference string
}

func (t *WalletTransaction) TableName() string {
	return "wallet_transactions"
}
