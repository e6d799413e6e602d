package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/komoralink/komora/dto"
)

// Order is placed by a buyer with a single seller business.
type Order struct {
	Base
	BuyerID          string            `gorm:"type:uuid;index;not null"`
	BusinessID       string            `gorm:"type:uuid;index;not null"`
	Status           dto.OrderStatus   `gorm:"type:varchar(20);index;not null;default:'PENDING_PAYMENT'"`
	PaymentMethod    dto.PaymentMethod `gorm:"type:varchar(20)"`
	PaymentReference string
	TotalAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	DeliveryAddress  string
	Note             string
	Lines            []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderLine freezes product name, quantity and unit price at order time.
type OrderLine struct {
	Base
	OrderID     string          `gorm:"type:uuid;index;not null"`
	ProductID   string          `gorm:"type:uuid;not null"`
	VariantID   string          `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (l *OrderLine) TableName() string {
	return "order_lines"
}

// ReleasesStock reports whether moving an order to next gives its reserved stock back.
func ReleasesStock(next dto.OrderStatus) bool {
	return next == dto.OrderCancelled || next == dto.OrderRefunded
}

// RestockQuantities sums the line quantities per variant.
func RestockQuantities(lines []OrderLine) map[string]int {
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.VariantID] += l.Quantity
	}
	return out
}

// StockError names the line whose quantity exceeds the stock. It matches ErrInsufficientStock.
type StockError struct {
	Product string
}

func (e *StockError) Error() string {
	return e.Product + ": " + ErrInsufficientStock.Error()
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

func lineName(v *Variant) string {
	if v.Product == nil {
		return v.Name
	}
	if v.Name == "" || strings.EqualFold(v.Name, v.Product.Name) {
		return v.Product.Name
	}
	return v.Product.Name + " - " + v.Name
}

// BuildOrders turns the requested variant quantities into one pending order per seller business.
// Repeated variants are merged. Every variant must be loaded with its product.
func BuildOrders(buyerID string, variants []Variant, req dto.CreateOrderRequest) ([]Order, error) {
	byID := make(map[string]*Variant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	quantities := make(map[string]int)
	var variantOrder []string
	for _, it := range req.Items {
		if _, seen := quantities[it.VariantID]; !seen {
			variantOrder = append(variantOrder, it.VariantID)
		}
		quantities[it.VariantID] += it.Quantity
	}

	orders := make(map[string]*Order)
	var businessOrder []string
	for _, id := range variantOrder {
		v, ok := byID[id]
		if !ok || v.Product == nil {
			return nil, fmt.Errorf("variant %s: %w", id, ErrNotFound)
		}
		qty := quantities[id]
		if qty > v.StockQuantity {
			return nil, &StockError{Product: lineName(v)}
		}

		o, ok := orders[v.Product.BusinessID]
		if !ok {
			o = &Order{
				BuyerID:         buyerID,
				BusinessID:      v.Product.BusinessID,
				Status:          dto.OrderPendingPayment,
				Currency:        v.Currency,
				TotalAmount:     decimal.Zero,
				DeliveryAddress: req.DeliveryAddress,
				Note:            req.Note,
			}
			orders[v.Product.BusinessID] = o
			businessOrder = append(businessOrder, v.Product.BusinessID)
		}

		price := v.EffectivePrice(v.Product)
		o.Lines = append(o.Lines, OrderLine{
			ProductID:   v.ProductID,
			VariantID:   v.ID,
			ProductName: lineName(v),
			Quantity:    qty,
			UnitPrice:   price,
		})
		o.TotalAmount = o.TotalAmount.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	out := make([]Order, 0, len(businessOrder))
	for _, b := range businessOrder {
		out = append(out, *orders[b])
	}
	return out, nil
}
