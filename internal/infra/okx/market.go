package okx

import (
	"context"
	"net/url"
	"strconv"

	"okx_go/internal/domain"
)

// GetInstruments lists tradable instruments of one type.
func (c *Client) GetInstruments(ctx context.Context, instType string) (*domain.Envelope, error) {
	query := url.Values{}
	query.Set("instType", instType)
	return c.get(ctx, pathInstruments, query)
}

// GetCandlesticks fetches OHLCV rows for an instrument.
func (c *Client) GetCandlesticks(ctx context.Context, instID, bar string, limit int) (*domain.Envelope, error) {
	query := url.Values{}
	query.Set("instId", instID)
	if bar != "" {
		query.Set("bar", bar)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.get(ctx, pathCandles, query)
}

// GetMarkPrice fetches the mark price for an instrument.
func (c *Client) GetMarkPrice(ctx context.Context, instType, instID string) (*domain.Envelope, error) {
	query := url.Values{}
	query.Set("instType", instType)
	if instID != "" {
		query.Set("instId", instID)
	}
	return c.get(ctx, pathMarkPrice, query)
}

// GetTicker fetches the latest ticker for an instrument.
func (c *Client) GetTicker(ctx context.Context, instID string) (*domain.Envelope, error) {
	query := url.Values{}
	query.Set("instId", instID)
	return c.get(ctx, pathTicker, query)
}
