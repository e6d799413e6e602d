package restaurant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

type RestaurantProvider interface {
	GetTables(ctx context.Context, businessID string) ([]models.Table, error)
	GetTable(ctx context.Context, id string) (*models.Table, error)
	CreateTable(ctx context.Context, table *models.Table) error
	UpdateTable(ctx context.Context, table *models.Table) error
	DeleteTable(ctx context.Context, id string) error

	GetMenus(ctx context.Context, businessID string) ([]models.Menu, error)
	GetMenu(ctx context.Context, id string) (*models.Menu, error)
	CreateMenu(ctx context.Context, menu *models.Menu) error
	UpdateMenu(ctx context.Context, menu *models.Menu, replaceItems bool) error
	DeleteMenu(ctx context.Context, id string) error
}

type VariantProvider interface {
	GetVariantsByIDs(ctx context.Context, ids []string) ([]models.Variant, error)
}

type RestaurantHandler struct {
	repo       RestaurantProvider
	variants   VariantProvider
	businesses api.BusinessLookup
	logger     *zap.Logger
}

func NewRestaurantHandler(r RestaurantProvider, variants VariantProvider, businesses api.BusinessLookup, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{repo: r, variants: variants, businesses: businesses, logger: logger}
}

// --- Tables ---

func (h *RestaurantHandler) HandleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.repo.GetTables(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	out := make([]dto.Table, len(tables))
	for i, t := range tables {
		out[i] = api.Table(t)
	}
	api.WriteData(w, http.StatusOK, out)
}

func (h *RestaurantHandler) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")
	var input dto.CreateTableRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, businessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	table := &models.Table{
		BusinessID:  businessID,
		Name:        strings.TrimSpace(input.Name),
		Capacity:    input.Capacity,
		IsAvailable: true,
		Location:    input.Location,
	}
	if err := h.repo.CreateTable(r.Context(), table); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	api.WriteData(w, http.StatusCreated, api.Table(*table))
}

func (h *RestaurantHandler) HandleUpdateTable(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateTableRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	table, err := h.repo.GetTable(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Table not found")
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, table.BusinessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	if input.Name != nil {
		table.Name = strings.TrimSpace(*input.Name)
	}
	if input.Capacity != nil {
		table.Capacity = *input.Capacity
	}
	if input.IsAvailable != nil {
		table.IsAvailable = *input.IsAvailable
	}
	if input.Location != nil {
		table.Location = *input.Location
	}
	if err := h.repo.UpdateTable(r.Context(), table); err != nil {
		api.WriteRepoError(w, h.logger, err, "Table not found")
		return
	}
	api.WriteData(w, http.StatusOK, api.Table(*table))
}

func (h *RestaurantHandler) HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.repo.GetTable(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Table not found")
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, table.BusinessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	if err := h.repo.DeleteTable(r.Context(), table.ID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Table not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Menus ---

func (h *RestaurantHandler) HandleListMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.repo.GetMenus(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	out := make([]dto.Menu, 0, len(menus))
	for _, m := range menus {
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, api.Menu(m))
	}
	api.WriteData(w, http.StatusOK, out)
}

func (h *RestaurantHandler) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.repo.GetMenu(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Menu not found")
		return
	}
	api.WriteData(w, http.StatusOK, api.Menu(*menu))
}

// menuItems resolves the requested variants, which must all be sold by businessID.
func (h *RestaurantHandler) menuItems(ctx context.Context, businessID string, inputs []dto.MenuItemInput) ([]models.MenuItem, error) {
	ids := make([]string, len(inputs))
	for i, in := range inputs {
		ids[i] = in.VariantID
	}
	variants, err := h.variants.GetVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Variant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	items := make([]models.MenuItem, len(inputs))
	for i, in := range inputs {
		v, ok := byID[in.VariantID]
		if !ok {
			return nil, fmt.Errorf("variant %s: %w", in.VariantID, models.ErrNotFound)
		}
		if v.Product == nil || v.Product.BusinessID != businessID {
			return nil, fmt.Errorf("variant %s is sold by another business: %w", in.VariantID, models.ErrForbidden)
		}
		items[i] = models.MenuItem{VariantID: v.ID, Variant: v, Quantity: in.Quantity}
	}
	return items, nil
}

func (h *RestaurantHandler) HandleCreateMenu(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("id")
	var input dto.CreateMenuRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, businessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	items, err := h.menuItems(r.Context(), businessID, input.Items)
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Variant not found")
		return
	}

	menu := &models.Menu{
		BusinessID:  businessID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		IsActive:    true,
		Items:       items,
	}
	if err := h.repo.CreateMenu(r.Context(), menu); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	h.logger.Info("menu created",
		zap.String("menu_id", menu.ID),
		zap.String("business_id", businessID),
		zap.Int("items", len(items)),
	)
	api.WriteData(w, http.StatusCreated, api.Menu(*menu))
}

func (h *RestaurantHandler) HandleUpdateMenu(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateMenuRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, "Invalid JSON body")
		return
	}
	if err := input.Validate(); err != nil {
		api.WriteValidation(w, err)
		return
	}

	menu, err := h.repo.GetMenu(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Menu not found")
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, menu.BusinessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}

	if input.Name != nil {
		menu.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		menu.Description = *input.Description
	}
	if input.Price != nil {
		menu.Price = *input.Price
	}
	if input.IsActive != nil {
		menu.IsActive = *input.IsActive
	}
	replace := input.Items != nil
	if replace {
		items, err := h.menuItems(r.Context(), menu.BusinessID, *input.Items)
		if err != nil {
			api.WriteRepoError(w, h.logger, err, "Variant not found")
			return
		}
		menu.Items = items
	}

	if err := h.repo.UpdateMenu(r.Context(), menu, replace); err != nil {
		api.WriteRepoError(w, h.logger, err, "Menu not found")
		return
	}
	api.WriteData(w, http.StatusOK, api.Menu(*menu))
}

func (h *RestaurantHandler) HandleDeleteMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.repo.GetMenu(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteRepoError(w, h.logger, err, "Menu not found")
		return
	}
	if err := api.CheckOwner(r.Context(), h.businesses, menu.BusinessID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Business not found")
		return
	}
	if err := h.repo.DeleteMenu(r.Context(), menu.ID); err != nil {
		api.WriteRepoError(w, h.logger, err, "Menu not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
