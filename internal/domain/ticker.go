package domain

import "github.com/shopspring/decimal"

// Ticker is a live market data point for one instrument.
type Ticker struct {
	InstID  string          `json:"inst_id"`
	Last    decimal.Decimal `json:"last"`
	Open24h decimal.Decimal `json:"open_24h"`
	High24h decimal.Decimal `json:"high_24h"`
	Low24h  decimal.Decimal `json:"low_24h"`
	Vol24h  decimal.Decimal `json:"vol_24h"`
	TsMilli int64           `json:"ts"`
}

// ChangePct24h returns the 24h change percentage, nil when the open is
// missing or zero.
func (t *Ticker) ChangePct24h() *decimal.Decimal {
	if t.Open24h.IsZero() {
		return nil
	}
	pct := t.Last.Sub(t.Open24h).Div(t.Open24h).Mul(decimal.NewFromInt(100))
	return &pct
}

// ChangeDirection returns "positive", "negative", or "neutral" for UI color hints.
func (t *Ticker) ChangeDirection() string {
	pct := t.ChangePct24h()
	if pct == nil {
		return "neutral"
	}
	if pct.IsPositive() {
		return "positive"
	}
	if pct.IsNegative() {
		return "negative"
	}
	return "neutral"
}
