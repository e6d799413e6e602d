package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderPending        OrderStatus = "PENDING"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderRefunded       OrderStatus = "REFUNDED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment: {OrderPending, OrderConfirmed, OrderCancelled},
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderProcessing, OrderCancelled, OrderRefunded},
	OrderProcessing:     {OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded},
	OrderShipped:        {OrderDelivered, OrderRefunded},
	OrderDelivered:      {OrderCompleted, OrderRefunded},
	OrderCompleted:      {OrderRefunded},
}

func (s OrderStatus) Valid() bool {
	if _, ok := orderTransitions[s]; ok {
		return true
	}
	return s == OrderCancelled || s == OrderRefunded
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCancelled || s == OrderRefunded
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from s in one step.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderTransitions[s]...)
}

type PaymentMethod string

const (
	PaymentWallet   PaymentMethod = "WALLET"
	PaymentStripe   PaymentMethod = "STRIPE"
	PaymentKartaPay PaymentMethod = "KARTAPAY"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentWallet || m == PaymentStripe || m == PaymentKartaPay
}

type OrderLine struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type Order struct {
	ID               string          `json:"id"`
	BuyerID          string          `json:"buyerId"`
	BusinessID       string          `json:"businessId"`
	Status           OrderStatus     `json:"status"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Currency         string          `json:"currency"`
	DeliveryAddress  string          `json:"deliveryAddress,omitempty"`
	Note             string          `json:"note,omitempty"`
	Lines            []OrderLine     `json:"lines"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type OrderItemRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	Note            string             `json:"note,omitempty"`
}

func (r CreateOrderRequest) Validate() error {
	var v ValidationError
	if len(r.Items) == 0 {
		v.add("items", "at least one item is required")
	}
	for _, it := range r.Items {
		if it.VariantID == "" {
			v.add("items", "every item needs a variantId")
		}
		if it.Quantity < 1 {
			v.add("items", "quantities must be at least 1")
		}
	}
	return v.orNil()
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	var v ValidationError
	if !r.Status.Valid() {
		v.add("status", "unknown status")
	}
	return v.orNil()
}

type PayOrderRequest struct {
	Method      PaymentMethod `json:"method"`
	PhoneNumber string        `json:"phoneNumber,omitempty"`
}

func (r PayOrderRequest) Validate() error {
	var v ValidationError
	if !r.Method.Valid() {
		v.add("method", "must be one of WALLET, STRIPE, KARTAPAY")
	}
	if r.Method == PaymentKartaPay {
		if strings.TrimSpace(r.PhoneNumber) == "" {
			v.add("phoneNumber", "required for mobile money")
		} else if !ValidPhone(r.PhoneNumber) {
			v.add("phoneNumber", "invalid phone number")
		}
	}
	return v.orNil()
}

type PaymentResult struct {
	Order        Order  `json:"order"`
	Reference    string `json:"reference"`
	ClientSecret string `json:"clientSecret,omitempty"`
}
