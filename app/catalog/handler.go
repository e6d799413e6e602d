package catalog

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type CatalogHandler struct {
	repo   ProductProvider
	logger *zap.Logger
}

func NewCatalogHandler(r ProductProvider, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   r,
		logger: logger,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := api.ParsePage(r)

	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		CategoryCode:  r.URL.Query().Get("category"),
		BusinessID:    r.URL.Query().Get("business"),
		Search:        r.URL.Query().Get("search"),
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.logger.Error("failed to get products", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to get products")
		return
	}

	products := make([]dto.Product, len(res))
	for i, p := range res {
		products[i] = api.Product(p)
	}

	api.WriteList(w, products, page, limit, total)
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Product not found")
		return
	}

	api.WriteData(w, http.StatusOK, api.Product(*product))
}
