package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/listing"
)

func (c *Client) ListInventory(ctx context.Context, businessID string, q listing.Query) (*dto.ListResponse[dto.InventoryItem], error) {
	var out dto.ListResponse[dto.InventoryItem]
	path := "/businesses/" + escape(businessID) + "/inventory"
	if err := c.do(ctx, http.MethodGet, path, q.Values("", ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListExpiringInventory returns the batches expiring within days. days <= 0 uses the server default.
func (c *Client) ListExpiringInventory(ctx context.Context, businessID string, days int) ([]dto.ExpiringBatch, error) {
	var q url.Values
	if days > 0 {
		q = url.Values{"days": {strconv.Itoa(days)}}
	}
	path := "/businesses/" + escape(businessID) + "/inventory/expiring"
	return getData[[]dto.ExpiringBatch](ctx, c, http.MethodGet, path, q, nil)
}

func (c *Client) WriteOffInventory(ctx context.Context, itemID string, req dto.WriteOffRequest) (dto.InventoryItem, error) {
	if err := req.Validate(); err != nil {
		return dto.InventoryItem{}, err
	}
	return getData[dto.InventoryItem](ctx, c, http.MethodPost, "/inventory/"+escape(itemID)+"/write-off", nil, req)
}
