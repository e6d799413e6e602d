package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a variant cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInsufficientBalance is returned when a wallet cannot cover a debit.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidTransition is returned when an order status change breaks the lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("forbidden")
)

// Base carries the uuid primary key and timestamps shared by every table.
type Base struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Business{},
		&Product{},
		&Variant{},
		&Table{},
		&Menu{},
		&MenuItem{},
		&InventoryItem{},
		&Order{},
		&OrderLine{},
		&Wallet{},
		&WalletTransaction{},
	)
}
