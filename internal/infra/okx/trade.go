package okx

import (
	"context"
	"net/url"

	"okx_go/internal/domain"
)

// PlaceOrder submits a new order.
func (c *Client) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Envelope, error) {
	return c.post(ctx, pathPlaceOrder, req)
}

// CancelOrder cancels an open order.
func (c *Client) CancelOrder(ctx context.Context, instID, ordID string) (*domain.Envelope, error) {
	body := map[string]string{
		"instId": instID,
		"ordId":  ordID,
	}
	return c.post(ctx, pathCancelOrder, body)
}

// GetOrderDetails fetches the current state of an order.
func (c *Client) GetOrderDetails(ctx context.Context, instID, ordID string) (*domain.Envelope, error) {
	query := url.Values{}
	query.Set("instId", instID)
	query.Set("ordId", ordID)
	return c.get(ctx, pathOrderDetails, query)
}
