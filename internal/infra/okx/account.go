package okx

import (
	"context"
	"net/url"

	"okx_go/internal/domain"
)

// GetBalance fetches account balances, optionally filtered to one currency.
func (c *Client) GetBalance(ctx context.Context, ccy string) (*domain.Envelope, error) {
	query := url.Values{}
	if ccy != "" {
		query.Set("ccy", ccy)
	}
	return c.get(ctx, pathBalance, query)
}

// GetPositions fetches open positions for an instrument type.
func (c *Client) GetPositions(ctx context.Context, instType string) (*domain.Envelope, error) {
	query := url.Values{}
	if instType != "" {
		query.Set("instType", instType)
	}
	return c.get(ctx, pathPositions, query)
}

// GetAccountConfig fetches the account configuration.
func (c *Client) GetAccountConfig(ctx context.Context) (*domain.Envelope, error) {
	return c.get(ctx, pathAccountConfig, nil)
}
