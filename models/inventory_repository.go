package models

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetInventory(ctx context.Context, businessID string, offset, limit int) ([]InventoryItem, int64, error) {
	var items []InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&InventoryItem{}).
		Where("business_id = ?", businessID).
		Preload("Variant").
		Preload("Variant.Product")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("sku").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetExpiring returns items with stock left expiring before until.
func (r *InventoryRepository) GetExpiring(ctx context.Context, businessID string, until time.Time) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := r.db.WithContext(ctx).
		Preload("Variant").
		Preload("Variant.Product").
		Where("business_id = ? AND quantity > 0 AND expiration_date IS NOT NULL AND expiration_date <= ?", businessID, until).
		Order("expiration_date").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryRepository) GetItem(ctx context.Context, id string) (*InventoryItem, error) {
	var item InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// WriteOff removes quantity units from stock as a loss.
func (r *InventoryRepository) WriteOff(ctx context.Context, id string, quantity int) (*InventoryItem, error) {
	var item InventoryItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&item).Error; err != nil {
			return notFound(err)
		}
		if item.Quantity < quantity {
			return ErrInsufficientStock
		}
		item.Quantity -= quantity
		item.WrittenOff += quantity
		return tx.Model(&item).Updates(map[string]any{
			"quantity":    item.Quantity,
			"written_off": item.WrittenOff,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
