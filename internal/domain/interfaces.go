package domain

import "context"

// Gateway abstracts the exchange REST surface so managers can be exercised
// against a stub. Implementations return the raw envelope plus a transport
// error; business rejections (code != "0") travel inside the envelope.
type Gateway interface {
	// Account
	GetBalance(ctx context.Context, ccy string) (*Envelope, error)
	GetPositions(ctx context.Context, instType string) (*Envelope, error)
	GetAccountConfig(ctx context.Context) (*Envelope, error)

	// Public / market data
	GetInstruments(ctx context.Context, instType string) (*Envelope, error)
	GetCandlesticks(ctx context.Context, instID, bar string, limit int) (*Envelope, error)
	GetMarkPrice(ctx context.Context, instType, instID string) (*Envelope, error)
	GetTicker(ctx context.Context, instID string) (*Envelope, error)

	// Trade
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Envelope, error)
	CancelOrder(ctx context.Context, instID, ordID string) (*Envelope, error)
	GetOrderDetails(ctx context.Context, instID, ordID string) (*Envelope, error)
}
