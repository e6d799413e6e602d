package client

import (
	"context"
	"net/http"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/listing"
)

// CreateOrders submits the lines in one request. The server answers with one order per seller.
func (c *Client) CreateOrders(ctx context.Context, req dto.CreateOrderRequest) ([]dto.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return getData[[]dto.Order](ctx, c, http.MethodPost, "/orders", nil, req)
}

// ListOrders sends Category as the status filter. A non-empty businessID lists that business's sales.
func (c *Client) ListOrders(ctx context.Context, q listing.Query, businessID string) (*dto.ListResponse[dto.Order], error) {
	v := q.Values("status", "")
	if businessID != "" {
		v.Set("business", businessID)
	}
	var out dto.ListResponse[dto.Order]
	if err := c.do(ctx, http.MethodGet, "/orders", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (dto.Order, error) {
	return getData[dto.Order](ctx, c, http.MethodGet, "/orders/"+escape(id), nil, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status dto.OrderStatus) (dto.Order, error) {
	req := dto.UpdateOrderStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return dto.Order{}, err
	}
	return getData[dto.Order](ctx, c, http.MethodPatch, "/orders/"+escape(id)+"/status", nil, req)
}

func (c *Client) PayOrder(ctx context.Context, id string, req dto.PayOrderRequest) (dto.PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return dto.PaymentResult{}, err
	}
	if req.PhoneNumber != "" {
		req.PhoneNumber = dto.NormalizePhone(req.PhoneNumber)
	}
	return getData[dto.PaymentResult](ctx, c, http.MethodPost, "/orders/"+escape(id)+"/pay", nil, req)
}
