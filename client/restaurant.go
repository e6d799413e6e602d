package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/komoralink/komora/dto"
)

func (c *Client) ListTables(ctx context.Context, businessID string) ([]dto.Table, error) {
	return getData[[]dto.Table](ctx, c, http.MethodGet, "/businesses/"+escape(businessID)+"/tables", nil, nil)
}

func (c *Client) CreateTable(ctx context.Context, businessID string, req dto.CreateTableRequest) (dto.Table, error) {
	if err := req.Validate(); err != nil {
		return dto.Table{}, err
	}
	return getData[dto.Table](ctx, c, http.MethodPost, "/businesses/"+escape(businessID)+"/tables", nil, req)
}

func (c *Client) UpdateTable(ctx context.Context, id string, req dto.UpdateTableRequest) (dto.Table, error) {
	if err := req.Validate(); err != nil {
		return dto.Table{}, err
	}
	return getData[dto.Table](ctx, c, http.MethodPatch, "/tables/"+escape(id), nil, req)
}

func (c *Client) DeleteTable(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tables/"+escape(id), nil, nil, nil)
}

// ListMenus returns the menus of a restaurant, only the active ones when activeOnly is set.
func (c *Client) ListMenus(ctx context.Context, businessID string, activeOnly bool) ([]dto.Menu, error) {
	var q url.Values
	if activeOnly {
		q = url.Values{"active": {"true"}}
	}
	return getData[[]dto.Menu](ctx, c, http.MethodGet, "/businesses/"+escape(businessID)+"/menus", q, nil)
}

func (c *Client) GetMenu(ctx context.Context, id string) (dto.Menu, error) {
	return getData[dto.Menu](ctx, c, http.MethodGet, "/menus/"+escape(id), nil, nil)
}

func (c *Client) CreateMenu(ctx context.Context, businessID string, req dto.CreateMenuRequest) (dto.Menu, error) {
	if err := req.Validate(); err != nil {
		return dto.Menu{}, err
	}
	return getData[dto.Menu](ctx, c, http.MethodPost, "/businesses/"+escape(businessID)+"/menus", nil, req)
}

func (c *Client) UpdateMenu(ctx context.Context, id string, req dto.UpdateMenuRequest) (dto.Menu, error) {
	if err := req.Validate(); err != nil {
		return dto.Menu{}, err
	}
	return getData[dto.Menu](ctx, c, http.MethodPatch, "/menus/"+escape(id), nil, req)
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/menus/"+escape(id), nil, nil, nil)
}
