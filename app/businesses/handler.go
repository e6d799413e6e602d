package businesses

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type BusinessProvider interface {
	GetFilteredBusinesses(ctx context.Context, offset, limit int, filters models.BusinessFilters) ([]models.Business, int64, error)
	GetByID(ctx context.Context, id string) (*models.Business, error)
	CreateBusiness(ctx context.Context, business *models.Business) error
	UpdateBusiness(ctx context.Context, business *models.Business) error
}

type BusinessHandler struct {
	repo   BusinessProvider
	logger *zap.Logger
}

func NewBusinessHandler(r BusinessProvider, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{repo: r, logger: logger}
}

// HandleList serves GET /businesses. owner=me restricts the list to the caller's businesses.
func (h *BusinessHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := api.ParsePage(r)
	q := r.URL.Query()

	filters := models.BusinessFilters{
		Type:   dto.BusinessType(strings.ToUpper(q.Get("type"))),
		Search: q.Get("search"),
		Sector: q.Get("sector"),
	}
	if filters.Type != "" && !filters.Type.Valid() {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Unknown business type")
		return
	}
	if q.Get("owner") == "me" {
		filters.OwnerID = api.UserID(r.Context())
		if filters.OwnerID == "" {
			api.WriteError(w, http.StatusUnauthorized, dto.CodeUnauthorized, "Authentication required")
			return
		}
	}

	res, total, err := h.repo.GetFilteredBusinesses(r.Context(), offset, limit, filters)
	if err != nil {
		h.logger.Error("failed to list businesses", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "failed to get businesses")
		return
	}

	businesses := make([]dto.Business, len(res))
	for i, b := range res {
		businesses[i] = api.Business(b)
	}
	api.WriteList(w, businesses, page, limit, total)
}

func (h *BusinessHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	business, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	api.WriteData(w, http.StatusOK, api.Business(*business))
}

func (h *BusinessHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateBusinessRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	business := &models.Business{
		OwnerID:        api.UserID(r.Context()),
		Name:           strings.TrimSpace(input.Name),
		Type:           input.Type,
		ActivitySector: strings.TrimSpace(input.ActivitySector),
		Description:    input.Description,
		Address:        input.Address,
		Phone:          dto.NormalizePhone(input.Phone),
		LogoURL:        input.LogoURL,
		CoverImageURL:  input.CoverImageURL,
		Tags:           input.Tags,
	}

	if err := h.repo.CreateBusiness(r.Context(), business); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	h.logger.Info("business created",
		zap.String("business_id", business.ID),
		zap.String("owner_id", business.OwnerID),
		zap.String("type", string(business.Type)),
	)
	api.WriteData(w, http.StatusCreated, api.Business(*business))
}

func (h *BusinessHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateBusinessRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	business, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	if business.OwnerID != api.UserID(r.Context()) {
		api.WriteRepoError(w, h.logger, models.ErrForbidden, "")
		return
	}

	business.ApplyUpdate(input)
	if err := h.repo.UpdateBusiness(r.Context(), business); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	api.WriteData(w, http.StatusOK, api.Business(*business))
}
