package client

import (
	"context"
	"net/http"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/listing"
)

// ListProducts sends Category as the category code. businessID may be empty.
func (c *Client) ListProducts(ctx context.Context, q listing.Query, businessID string) (*dto.ListResponse[dto.Product], error) {
	v := q.Values("category", "")
	if businessID != "" {
		v.Set("business", businessID)
	}
	var out dto.ListResponse[dto.Product]
	if err := c.do(ctx, http.MethodGet, "/products", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (dto.Product, error) {
	return getData[dto.Product](ctx, c, http.MethodGet, "/products/"+escape(id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]dto.Category, error) {
	return getData[[]dto.Category](ctx, c, http.MethodGet, "/categories", nil, nil)
}
