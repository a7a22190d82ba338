package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order mirrors an order this application placed on the exchange.
// The exchange stays authoritative: rows are created only after a confirmed
// placement and Status is overwritten with whatever the exchange last reported.
type Order struct {
	ID        uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string              `gorm:"uniqueIndex;not null" json:"order_id"` // exchange-assigned ordId
	Symbol    string              `gorm:"index;not null" json:"symbol"`
	Side      string              `gorm:"not null" json:"side"`             // buy/sell
	OrderType string              `gorm:"not null" json:"order_type"`       // market/limit
	Price     decimal.NullDecimal `gorm:"type:decimal(32,12)" json:"price"` // limit price, avgPx after fills
	Quantity  decimal.Decimal     `gorm:"type:decimal(32,12);not null" json:"quantity"`
	Status    string              `gorm:"default:pending" json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

const (
	SideBuy  = "buy"
	SideSell = "sell"

	OrderTypeLimit  = "limit"
	OrderTypeMarket = "market"

	// Order states as the exchange reports them. "pending" is the one local
	// placeholder used before the first state is seen.
	OrderStatusPending         = "pending"
	OrderStatusLive            = "live"
	OrderStatusPartiallyFilled = "partially_filled"
	OrderStatusFilled          = "filled"
	OrderStatusCanceled        = "canceled"
)

// IsOpen reports whether the order may still change on the exchange and is
// therefore worth reconciling.
func (o *Order) IsOpen() bool {
	switch o.Status {
	case OrderStatusFilled, OrderStatusCanceled:
		return false
	}
	return true
}

func (o *Order) String() string {
	px := "market"
	if o.Price.Valid {
		px = o.Price.Decimal.String()
	}
	return fmt.Sprintf("<Order %s: %s %s %s @ %s>", o.OrderID, o.Symbol, o.Side, o.Quantity, px)
}
