package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/komoralink/komora/cart"
	"github.com/komoralink/komora/client"
	"github.com/komoralink/komora/dto"
)

var (
	ErrEmptyCart  = errors.New("checkout: cart is empty")
	ErrOverStock  = errors.New("checkout: quantity exceeds stock")
	ErrInProgress = errors.New("checkout: already submitting")
)

const (
	MessageEmptyCart = "Votre panier est vide."
	MessageSuccess   = "Commande passée avec succès."
)

// OrderCreator submits an order-creation request. *client.Client implements it.
type OrderCreator interface {
	CreateOrders(ctx context.Context, req dto.CreateOrderRequest) ([]dto.Order, error)
}

type Options struct {
	DeliveryAddress string
	Note            string
}

// Result is what the screen shows after a checkout attempt.
type Result struct {
	Orders      []dto.Order
	Destination string
	Message     string
}

type Orchestrator struct {
	orders     OrderCreator
	cart       *cart.Cart
	logger     *zap.Logger
	submitting atomic.Bool
}

func New(orders OrderCreator, c *cart.Cart, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{orders: orders, cart: c, logger: logger}
}

// Request maps cart lines to the order payload, one item per line.
func Request(lines []cart.Item, opts Options) dto.CreateOrderRequest {
	items := make([]dto.OrderItemRequest, len(lines))
	for i, l := range lines {
		items[i] = dto.OrderItemRequest{VariantID: l.VariantID, Quantity: l.Quantity}
	}
	return dto.CreateOrderRequest{
		Items:           items,
		DeliveryAddress: strings.TrimSpace(opts.DeliveryAddress),
		Note:            strings.TrimSpace(opts.Note),
	}
}

// Destination is the route shown after orders were created.
func Destination(orders []dto.Order) string {
	if len(orders) == 1 {
		return "/orders/" + orders[0].ID
	}
	return "/orders"
}

// Checkout submits the cart. The server may split it into one order per seller. The cart is
// cleared on success and left untouched on any failure.
func (o *Orchestrator) Checkout(ctx context.Context, opts Options) (Result, error) {
	if !o.submitting.CompareAndSwap(false, true) {
		return Result{}, ErrInProgress
	}
	defer o.submitting.Store(false)

	lines := o.cart.Lines()
	if len(lines) == 0 {
		return Result{Message: MessageEmptyCart}, ErrEmptyCart
	}
	if over := o.cart.OverStock(); len(over) > 0 {
		names := make([]string, len(over))
		for i, it := range over {
			names[i] = fmt.Sprintf("%s (stock: %d)", it.Name, it.Stock)
		}
		return Result{Message: "Stock insuffisant: " + strings.Join(names, ", ")}, ErrOverStock
	}

	req := Request(lines, opts)
	if err := req.Validate(); err != nil {
		return Result{Message: client.UserMessage(err)}, err
	}

	orders, err := o.orders.CreateOrders(ctx, req)
	if err != nil {
		o.logger.Info("checkout failed", zap.Int("lines", len(lines)), zap.Error(err))
		return Result{Message: client.UserMessage(err)}, err
	}

	o.cart.Clear()
	o.logger.Info("checkout succeeded", zap.Int("orders", len(orders)))
	return Result{Orders: orders, Destination: Destination(orders), Message: MessageSuccess}, nil
}
