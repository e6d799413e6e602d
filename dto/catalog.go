package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "XAF"

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Variant struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

type Product struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"businessId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      *Category       `json:"category,omitempty"`
	AverageRating decimal.Decimal `json:"averageRating"`
	RatingCount   int             `json:"ratingCount"`
	Variants      []Variant       `json:"variants"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
