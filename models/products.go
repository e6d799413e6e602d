package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It belongs to a business, optionally to a category, and is sold through its variants.
type Product struct {
	Base
	BusinessID    string `gorm:"type:uuid;index;not null"`
	Name          string `gorm:"not null"`
	Description   string
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CategoryID    *uint
	Category      *Category       `gorm:"foreignKey:CategoryID"`
	AverageRating decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	RatingCount   int             `gorm:"not null;default:0"`
	Variants      []Variant       `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}

// Variant is the purchasable unit of a product. A zero price inherits the product's price.
type Variant struct {
	Base
	ProductID     string          `gorm:"type:uuid;index;not null"`
	Product       *Product        `gorm:"foreignKey:ProductID"`
	Name          string          `gorm:"not null"`
	SKU           string          `gorm:"uniqueIndex;not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'XAF'"`
	StockQuantity int             `gorm:"not null;default:0"`
	ImageURL      string
}

func (v *Variant) TableName() string {
	return "variants"
}

// EffectivePrice returns the variant price, falling back to the product price when unset.
func (v *Variant) EffectivePrice(p *Product) decimal.Decimal {
	if v.Price.IsZero() && p != nil {
		return p.Price
	}
	return v.Price
}
