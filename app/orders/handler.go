package orders

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type OrderProvider interface {
	CreateOrders(ctx context.Context, orders []models.Order) error
	GetOrders(ctx context.Context, offset, limit int, filters models.OrderFilters) ([]models.Order, int64, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, next dto.OrderStatus) (*models.Order, error)
	PayOrder(ctx context.Context, id, buyerID string, method dto.PaymentMethod, reference string) (*models.Order, error)
}

type VariantProvider interface {
	GetVariantsByIDs(ctx context.Context, ids []string) ([]models.Variant, error)
}

type OrderHandler struct {
	repo         OrderProvider
	variants     VariantProvider
	businesses   api.BusinessLookup
	logger       *zap.Logger
	newReference func() string
}

func NewOrderHandler(r OrderProvider, variants VariantProvider, businesses api.BusinessLookup, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		repo:         r,
		variants:     variants,
		businesses:   businesses,
		logger:       logger,
		newReference: func() string { return uuid.NewString() },
	}
}

// HandleCreate places one order per seller business found in the request.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateOrderRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	ids := make([]string, 0, len(input.Items))
	for _, it := range input.Items {
		ids = append(ids, it.VariantID)
	}
	variants, err := h.variants.GetVariantsByIDs(r.Context(), ids)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Product not found")
		return
	}

	buyerID := api.UserID(r.Context())
	orders, err := models.BuildOrders(buyerID, variants, input)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Product not found")
		return
	}
	if err := h.repo.CreateOrders(r.Context(), orders); err != nil {
		api.WriteRepoError(w, h.logger, err, "Product not found")
		return
	}

	out := make([]dto.Order, len(orders))
	for i, o := range orders {
		out[i] = api.Order(o)
	}
	h.logger.Info("orders placed",
		zap.String("buyer_id", buyerID),
		zap.Int("orders", len(orders)),
		zap.Int("lines", len(input.Items)),
	)
	api.WriteData(w, http.StatusCreated, out)
}

// HandleList returns the caller's purchases, or the sales of ?business= when the caller owns it.
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := api.ParsePage(r)
	q := r.URL.Query()

	filters := models.OrderFilters{Status: dto.OrderStatus(strings.ToUpper(q.Get("status")))}
	if filters.Status != "" && !filters.Status.Valid() {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Unknown order status")
		return
	}
	if businessID := q.Get("business"); businessID != "" {
		if err := api.CheckOwner(r.Context(), h.businesses, businessID); err != nil {
			api.WriteRepoError(w, h.logger, err, "Business not found")
			return
		}
		filters.BusinessID = businessID
	} else {
		filters.BuyerID = api.UserID(r.Context())
	}

	res, total, err := h.repo.GetOrders(r.Context(), offset, limit, filters)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to get orders")
		return
	}

	orders := make([]dto.Order, len(res))
	for i, o := range res {
		orders[i] = api.Order(o)
	}
	api.WriteList(w, orders, page, limit, total)
}

// sellerOwns reports whether the caller owns the business the order was placed with.
func (h *OrderHandler) sellerOwns(ctx context.Context, order *models.Order) (bool, error) {
	err := api.CheckOwner(ctx, h.businesses, order.BusinessID)
	if errors.Is(err, models.ErrForbidden) || errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Order not found")
		return
	}
	if order.BuyerID != api.UserID(r.Context()) {
		owns, err := h.sellerOwns(r.Context(), order)
		if err != nil {
			api.WriteRepoError(w, h.logger, err, "Order not found")
			return
		}
		if !owns {
			api.WriteRepoError(w, h.logger, models.ErrForbidden, "")
			return
		}
	}
	api.WriteData(w, http.StatusOK, api.Order(*order))
}

// HandleUpdateStatus lets the seller drive the lifecycle. The buyer may only cancel before
// the order is confirmed.
func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateOrderStatusRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	order, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Order not found")
		return
	}

	owns, err := h.sellerOwns(r.Context(), order)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Order not found")
		return
	}
	buyerCancel := order.BuyerID == api.UserID(r.Context()) &&
		input.Status == dto.OrderCancelled &&
		(order.Status == dto.OrderPendingPayment || order.Status == dto.OrderPending)
	if !owns && !buyerCancel {
		api.WriteRepoError(w, h.logger, models.ErrForbidden, "")
		return
	}

	updated, err := h.repo.UpdateStatus(r.Context(), order.ID, input.Status)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Order not found")
		return
	}

	h.logger.Info("order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(updated.Status)),
	)
	api.WriteData(w, http.StatusOK, api.Order(*updated))
}

// HandlePay settles a PENDING_PAYMENT order. Wallet payments are immediate; card and mobile money
// payments return a reference the client follows up with the provider.
func (h *OrderHandler) HandlePay(w http.ResponseWriter, r *http.Request) {
	var input dto.PayOrderRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	reference := h.newReference()
	order, err := h.repo.PayOrder(r.Context(), r.PathValue("id"), api.UserID(r.Context()), input.Method, reference)
	if err != nil {
		if !errors.Is(err, models.ErrInsufficientBalance) {
			h.logger.Warn("payment refused", zap.String("order_id", r.PathValue("id")), zap.Error(err))
		}
		api.WriteRepoError(w, h.logger, err, "Order not found")
		return
	}

	result := dto.PaymentResult{Order: api.Order(*order), Reference: reference}
	if input.Method == dto.PaymentStripe {
		result.ClientSecret = "pi_" + strings.ReplaceAll(reference, "-", "") + "_secret"
	}

	h.logger.Info("order paid",
		zap.String("order_id", order.ID),
		zap.String("method", string(input.Method)),
		zap.String("status", string(order.Status)),
	)
	api.WriteData(w, http.StatusOK, result)
}
