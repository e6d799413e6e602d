package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/komoralink/komora/dto"
)

type OrderFilters struct {
	BuyerID    string
	BusinessID string
	Status     dto.OrderStatus
}

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// CreateOrders reserves stock for every line and stores the orders in one transaction.
func (r *OrdersRepository) CreateOrders(ctx context.Context, orders []Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			for _, line := range orders[i].Lines {
				res := tx.Model(&Variant{}).
					Where("id = ? AND stock_quantity >= ?", line.VariantID, line.Quantity).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return ErrInsufficientStock
				}
			}
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrdersRepository) GetOrders(ctx context.Context, offset, limit int, filters OrderFilters) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := r.db.WithContext(ctx).Model(&Order{}).Preload("Lines")
	if filters.BuyerID != "" {
		query = query.Where("buyer_id = ?", filters.BuyerID)
	}
	if filters.BusinessID != "" {
		query = query.Where("business_id = ?", filters.BusinessID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrdersRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).Preload("Lines").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func lockOrder(tx *gorm.DB, id string) (*Order, error) {
	var order Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// releaseStock adds the quantities reserved by CreateOrders back to the variants.
func releaseStock(tx *gorm.DB, orderID string) error {
	var lines []OrderLine
	if err := tx.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
		return err
	}
	for variantID, qty := range RestockQuantities(lines) {
		if err := tx.Model(&Variant{}).
			Where("id = ?", variantID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty)).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus moves the order to next if the lifecycle allows it. Cancelling or refunding
// returns the reserved stock in the same transaction.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id string, next dto.OrderStatus) (*Order, error) {
	var order *Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if order, err = lockOrder(tx, id); err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		if ReleasesStock(next) {
			if err := releaseStock(tx, order.ID); err != nil {
				return err
			}
		}
		order.Status = next
		return tx.Model(order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// PayOrder records the payment of a pending order by its buyer. Wallet payments debit the
// buyer's wallet and confirm the order; provider payments leave it PENDING until the provider
// reports back.
func (r *OrdersRepository) PayOrder(ctx context.Context, id, buyerID string, method dto.PaymentMethod, reference string) (*Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, id)
		if err != nil {
			return err
		}
		if order.BuyerID != buyerID {
			return ErrForbidden
		}
		if order.Status != dto.OrderPendingPayment {
			return ErrInvalidTransition
		}

		next := dto.OrderPending
		if method == dto.PaymentWallet {
			if _, _, err := debitWallet(tx, buyerID, order.TotalAmount, dto.TxPayment, order.ID); err != nil {
				return err
			}
			next = dto.OrderConfirmed
		}

		return tx.Model(order).Updates(map[string]any{
			"status":            next,
			"payment_method":    method,
			"payment_reference": reference,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
