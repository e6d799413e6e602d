package inventory

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type InventoryProvider interface {
	GetInventory(ctx context.Context, businessID string, offset, limit int) ([]models.InventoryItem, int64, error)
	GetExpiring(ctx context.Context, businessID string, until time.Time) ([]models.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*models.InventoryItem, error)
	WriteOff(ctx context.Context, id string, quantity int) (*models.InventoryItem, error)
}

type InventoryHandler struct {
	repo       InventoryProvider
	businesses api.BusinessLookup
	logger     *zap.Logger
	now        func() time.Time
}

func NewInventoryHandler(r InventoryProvider, businesses api.BusinessLookup, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{repo: r, businesses: businesses, logger: logger, now: time.Now}
}

func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")
	if err := api.CheckOwner(r.Context(), h.businesses, businessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	page, limit, offset := api.ParsePage(r)
	res, total, err := h.repo.GetInventory(r.Context(), businessID, offset, limit)
	if err != nil {
		h.logger.Error("failed to list inventory", zap.String("business_id", businessID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to get inventory")
		return
	}

	items := make([]dto.InventoryItem, len(res))
	for i, it := range res {
		items[i] = api.InventoryItem(it)
	}
	api.WriteList(w, items, page, limit, total)
}

// HandleExpiring serves the batches expiring within ?days= (default 30), earliest first.
func (h *InventoryHandler) HandleExpiring(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")
	days := dto.ExpiryWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 365 {
			api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "days must be between 1 and 365")
			return
		}
		days = d
	}
	if err := api.CheckOwner(r.Context(), h.businesses, businessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	now := h.now()
	window := time.Duration(days) * 24 * time.Hour
	res, err := h.repo.GetExpiring(r.Context(), businessID, now.Add(window))
	if err != nil {
		h.logger.Error("failed to list expiring stock", zap.String("business_id", businessID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to get expiring stock")
		return
	}

	batches := models.GroupExpiringBatches(res, now, window)
	out := make([]dto.ExpiringBatch, len(batches))
	for i, b := range batches {
		items := make([]dto.InventoryItem, len(b.Items))
		for j, it := range b.Items {
			items[j] = api.InventoryItem(it)
		}
		out[i] = dto.ExpiringBatch{
			ExpirationDate: b.ExpirationDate,
			DaysLeft:       b.DaysLeft,
			Items:          items,
			Quantity:       b.Quantity,
			ValueAtRisk:    b.ValueAtRisk,
		}
	}
	api.WriteData(w, http.StatusOK, out)
}

func (h *InventoryHandler) HandleWriteOff(w http.ResponseWriter, r *http.Request) {
	var input dto.WriteOffRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	item, err := h.repo.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Inventory item not found")
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, item.BusinessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	updated, err := h.repo.WriteOff(r.Context(), item.ID, input.Quantity)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Inventory item not found")
		return
	}

	h.logger.Info("stock written off",
		zap.String("item_id", item.ID),
		zap.String("sku", item.SKU),
		zap.Int("quantity", input.Quantity),
		zap.String("reason", input.Reason),
	)
	api.WriteData(w, http.StatusOK, api.InventoryItem(*updated))
}
