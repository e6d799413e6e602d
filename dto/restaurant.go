package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Table struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"isAvailable"`
	Location    string `json:"location,omitempty"`
}

type CreateTableRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
}

func (r CreateTableRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.add("name", "required")
	}
	if r.Capacity < 1 {
		v.add("capacity", "must be at least 1")
	}
	return v.orNil()
}

type UpdateTableRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	Location    *string `json:"location,omitempty"`
}

func (r UpdateTableRequest) Validate() error {
	var v ValidationError
	if r.Name == nil && r.Capacity == nil && r.IsAvailable == nil && r.Location == nil {
		v.add("body", "no field to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		v.add("name", "cannot be blank")
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		v.add("capacity", "must be at least 1")
	}
	return v.orNil()
}

// MenuItem is one constituent variant of a menu. Name, UnitPrice and Currency are denormalized
// from the variant so a menu can be put in a cart without extra lookups.
type MenuItem struct {
	ID          string          `json:"id,omitempty"`
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"productName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Currency    string          `json:"currency,omitempty"`
	Stock       int             `json:"stock,omitempty"`
}

type Menu struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"businessId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
	Items       []MenuItem      `json:"items"`
}

type MenuItemInput struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type CreateMenuRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Items       []MenuItemInput `json:"items"`
}

func validateMenuItems(v *ValidationError, items []MenuItemInput) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.VariantID == "" {
			v.add("items", "every item needs a variantId")
			continue
		}
		if seen[it.VariantID] {
			v.add("items", "variant "+it.VariantID+" is listed twice")
		}
		seen[it.VariantID] = true
		if it.Quantity < 1 {
			v.add("items", "quantities must be at least 1")
		}
	}
}

func (r CreateMenuRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.add("name", "required")
	}
	if !r.Price.IsPositive() {
		v.add("price", "must be positive")
	}
	if len(r.Items) == 0 {
		v.add("items", "a menu needs at least one item")
	}
	validateMenuItems(&v, r.Items)
	return v.orNil()
}

type UpdateMenuRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
	Items       *[]MenuItemInput `json:"items,omitempty"`
}

func (r UpdateMenuRequest) Validate() error {
	var v ValidationError
	if r.Name == nil && r.Description == nil && r.Price == nil && r.IsActive == nil && r.Items == nil {
		v.add("body", "no field to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		v.add("name", "cannot be blank")
	}
	if r.Price != nil && !r.Price.IsPositive() {
		v.add("price", "must be positive")
	}
	if r.Items != nil {
		if len(*r.Items) == 0 {
			v.add("items", "a menu needs at least one item")
		}
		validateMenuItems(&v, *r.Items)
	}
	return v.orNil()
}
