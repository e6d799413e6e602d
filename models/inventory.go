package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the stock a business holds for one variant, possibly spread over several lots.
type InventoryItem struct {
	Base
	BusinessID     string          `gorm:"type:uuid;index;not null"`
	ProductID      string          `gorm:"type:uuid;not null"`
	VariantID      string          `gorm:"type:uuid;not null"`
	Variant        *Variant        `gorm:"foreignKey:VariantID"`
	SKU            string          `gorm:"index;not null"`
	Quantity       int             `gorm:"not null;default:0"`
	LotCount       int             `gorm:"not null;default:1"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ExpirationDate *time.Time      `gorm:"index"`
	WrittenOff     int             `gorm:"not null;default:0"`
}

func (i *InventoryItem) TableName() string {
	return "inventory_items"
}

// ExpiringBatch is the set of inventory items expiring on the same day.
type ExpiringBatch struct {
	ExpirationDate time.Time
	DaysLeft       int
	Items          []InventoryItem
	Quantity       int
	ValueAtRisk    decimal.Decimal
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GroupExpiringBatches groups items with remaining stock whose expiration date falls within
// [now, now+window], earliest first. Items already expired are included with DaysLeft <= 0.
func GroupExpiringBatches(items []InventoryItem, now time.Time, window time.Duration) []ExpiringBatch {
	today := truncateDay(now)
	limit := today.Add(window)

	byDay := make(map[time.Time]*ExpiringBatch)
	for _, it := range items {
		if it.ExpirationDate == nil || it.Quantity <= 0 {
			continue
		}
		day := truncateDay(it.ExpirationDate.In(now.Location()))
		if day.After(limit) {
			continue
		}
		b, ok := byDay[day]
		if !ok {
			b = &ExpiringBatch{
				ExpirationDate: day,
				DaysLeft:       int(day.Sub(today).Hours() / 24),
				ValueAtRisk:    decimal.Zero,
			}
			byDay[day] = b
		}
		b.Items = append(b.Items, it)
		b.Quantity += it.Quantity
		b.ValueAtRisk = b.ValueAtRisk.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	batches := make([]ExpiringBatch, 0, len(byDay))
	for _, b := range byDay {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].ExpirationDate.Before(batches[j].ExpirationDate)
	})
	return batches
}
