package client

import (
	"context"
	"net/http"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/listing"
)

// ListBusinesses sends Category as the business type and Secondary as the sector.
func (c *Client) ListBusinesses(ctx context.Context, q listing.Query) (*dto.ListResponse[dto.Business], error) {
	var out dto.ListResponse[dto.Business]
	if err := c.do(ctx, http.MethodGet, "/businesses", q.Values("type", "sector"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyBusinesses lists the businesses owned by the session user.
func (c *Client) ListMyBusinesses(ctx context.Context, q listing.Query) (*dto.ListResponse[dto.Business], error) {
	v := q.Values("type", "sector")
	v.Set("owner", "me")
	var out dto.ListResponse[dto.Business]
	if err := c.do(ctx, http.MethodGet, "/businesses", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBusiness(ctx context.Context, id string) (dto.Business, error) {
	return getData[dto.Business](ctx, c, http.MethodGet, "/businesses/"+escape(id), nil, nil)
}

func (c *Client) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest) (dto.Business, error) {
	if err := req.Validate(); err != nil {
		return dto.Business{}, err
	}
	return getData[dto.Business](ctx, c, http.MethodPost, "/businesses", nil, req)
}

func (c *Client) UpdateBusiness(ctx context.Context, id string, req dto.UpdateBusinessRequest) (dto.Business, error) {
	if err := req.Validate(); err != nil {
		return dto.Business{}, err
	}
	return getData[dto.Business](ctx, c, http.MethodPatch, "/businesses/"+escape(id), nil, req)
}
