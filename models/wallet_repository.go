package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/komoralink/komora/dto"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func ensureWallet(tx *gorm.DB, userID string) (*Wallet, error) {
	var wallet Wallet
	if err := tx.Where(Wallet{UserID: userID}).
		Attrs(Wallet{Balance: decimal.Zero, Currency: dto.DefaultCurrency}).
		FirstOrCreate(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func record(tx *gorm.DB, wallet *Wallet, kind dto.TransactionKind, amount decimal.Decimal, ref string) (*Wallet, *WalletTransaction, error) {
	if err := tx.Where("id = ?", wallet.ID).First(wallet).Error; err != nil {
		return nil, nil, err
	}
	entry := &WalletTransaction{WalletID: wallet.ID, Kind: kind, Amount: amount, Reference: ref}
	if err := tx.Create(entry).Error; err != nil {
		return nil, nil, err
	}
	return wallet, entry, nil
}

func debitWallet(tx *gorm.DB, userID string, amount decimal.Decimal, kind dto.TransactionKind, ref string) (*Wallet, *WalletTransaction, error) {
	wallet, err := ensureWallet(tx, userID)
	if err != nil {
		return nil, nil, err
	}
	res := tx.Model(&Wallet{}).
		Where("id = ? AND balance >= ?", wallet.ID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil, ErrInsufficientBalance
	}
	return record(tx, wallet, kind, amount, ref)
}

// findWallet returns the existing wallet of userID, ErrNotFound if the user has none.
func findWallet(tx *gorm.DB, userID string) (*Wallet, error) {
	var wallet Wallet
	if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, notFound(err)
	}
	return &wallet, nil
}

func creditWallet(tx *gorm.DB, userID string, amount decimal.Decimal, kind dto.TransactionKind, ref string) (*Wallet, *WalletTransaction, error) {
	wallet, err := ensureWallet(tx, userID)
	if err != nil {
		return nil, nil, err
	}
	return credit(tx, wallet, amount, kind, ref)
}

func credit(tx *gorm.DB, wallet *Wallet, amount decimal.Decimal, kind dto.TransactionKind, ref string) (*Wallet, *WalletTransaction, error) {
	if err := tx.Model(&Wallet{}).
		Where("id = ?", wallet.ID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return nil, nil, err
	}
	return record(tx, wallet, kind, amount, ref)
}

func (r *WalletRepository) GetOrCreate(ctx context.Context, userID string) (*Wallet, error) {
	return ensureWallet(r.db.WithContext(ctx), userID)
}

func (r *WalletRepository) Deposit(ctx context.Context, userID string, amount decimal.Decimal, ref string) (*Wallet, *WalletTransaction, error) {
	var wallet *Wallet
	var entry *WalletTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, entry, err = creditWallet(tx, userID, amount, dto.TxDeposit, ref)
		return err
	})
	return wallet, entry, err
}

func (r *WalletRepository) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, ref string) (*Wallet, *WalletTransaction, error) {
	var wallet *Wallet
	var entry *WalletTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, entry, err = debitWallet(tx, userID, amount, dto.TxWithdrawal, ref)
		return err
	})
	return wallet, entry, err
}

// Transfer moves amount from one user's wallet to another's and returns the sender side.
// The recipient must already have a wallet; ErrNotFound otherwise.
func (r *WalletRepository) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal, note string) (*Wallet, *WalletTransaction, error) {
	var wallet *Wallet
	var entry *WalletTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipient, err := findWallet(tx, toUserID)
		if err != nil {
			return err
		}
		wallet, entry, err = debitWallet(tx, fromUserID, amount, dto.TxTransferOut, note)
		if err != nil {
			return err
		}
		_, _, err = credit(tx, recipient, amount, dto.TxTransferIn, note)
		return err
	})
	return wallet, entry, err
}
