package categories

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo   CategoryProvider
	logger *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, logger: logger}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch categories", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to fetch categories")
		return
	}

	response := make([]dto.Category, len(categories))
	for i, c := range categories {
		response[i] = dto.Category{
			Code: c.Code,
			Name: c.Name,
		}
	}

	api.WriteData(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.Category
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}

	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	if input.Code == "" || input.Name == "" {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Missing code or name")
		return
	}

	category := &models.Category{
		Code: input.Code,
		Name: input.Name,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "Failed to create category")
		return
	}

	api.WriteData(w, http.StatusCreated, input)
}
