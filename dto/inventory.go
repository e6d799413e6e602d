package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryWindowDays is the default look-ahead for the expiring stock view.
const ExpiryWindowDays = 30

type InventoryItem struct {
	ID             string          `json:"id"`
	BusinessID     string          `json:"businessId"`
	ProductID      string          `json:"productId"`
	VariantID      string          `json:"variantId"`
	ProductName    string          `json:"productName,omitempty"`
	SKU            string          `json:"sku"`
	Quantity       int             `json:"quantity"`
	LotCount       int             `json:"lotCount"`
	Price          decimal.Decimal `json:"price"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	WrittenOff     int             `json:"writtenOff"`
}

// ExpiringBatch groups the items sharing an expiration day.
type ExpiringBatch struct {
	ExpirationDate time.Time       `json:"expirationDate"`
	DaysLeft       int             `json:"daysLeft"`
	Items          []InventoryItem `json:"items"`
	Quantity       int             `json:"quantity"`
	ValueAtRisk    decimal.Decimal `json:"valueAtRisk"`
}

type WriteOffRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

func (r WriteOffRequest) Validate() error {
	var v ValidationError
	if r.Quantity < 1 {
		v.add("quantity", "must be at least 1")
	}
	return v.orNil()
}
