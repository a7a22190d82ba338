package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrder_IsOpen(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusLive, true},
		{OrderStatusPartiallyFilled, true},
		{OrderStatusFilled, false},
		{OrderStatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			o := &Order{Status: tt.status}
			if o.IsOpen() != tt.want {
				t.Errorf("IsOpen() with status %q = %v, want %v", tt.status, o.IsOpen(), tt.want)
			}
		})
	}
}

func TestOrder_String(t *testing.T) {
	o := &Order{
		OrderID:   "1001",
		Symbol:    "BTC-USDT",
		Side:      SideBuy,
		OrderType: OrderTypeLimit,
		Quantity:  decimal.RequireFromString("0.01"),
		Price:     decimal.NewNullDecimal(decimal.RequireFromString("50000")),
	}

	want := "<Order 1001: BTC-USDT buy 0.01 @ 50000>"
	if o.String() != want {
		t.Errorf("String() = %q, want %q", o.String(), want)
	}

	o.Price = decimal.NullDecimal{}
	o.OrderType = OrderTypeMarket
	want = "<Order 1001: BTC-USDT buy 0.01 @ market>"
	if o.String() != want {
		t.Errorf("String() = %q, want %q", o.String(), want)
	}
}
