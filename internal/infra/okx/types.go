package okx

import "time"

// OKX v5 API endpoints
const (
	BaseURLLive = "https://www.okx.com"

	pathBalance       = "/api/v5/account/balance"
	pathPositions     = "/api/v5/account/positions"
	pathAccountConfig = "/api/v5/account/config"
	pathInstruments   = "/api/v5/public/instruments"
	pathMarkPrice     = "/api/v5/public/mark-price"
	pathTicker        = "/api/v5/market/ticker"
	pathCandles       = "/api/v5/market/candles"
	pathPlaceOrder    = "/api/v5/trade/order"
	pathCancelOrder   = "/api/v5/trade/cancel-order"
	pathOrderDetails  = "/api/v5/trade/order"
)

// Public WebSocket stream settings
const (
	publicWSURL  = "wss://ws.okx.com:8443/ws/v5/public"
	maxRetries   = 10
	baseDelay    = 1 * time.Second
	maxDelay     = 60 * time.Second
	pingInterval = 20 * time.Second // OKX drops idle connections after 30s
	readTimeout  = 40 * time.Second
)

// subscribeRequest is the public channel subscription frame.
type subscribeRequest struct {
	Op   string         `json:"op"`
	Args []subscribeArg `json:"args"`
}

type subscribeArg struct {
	Channel string `json:"channel"`
	InstID  string `json:"instId"`
}

// wsMessage covers both event acks and data pushes from the public stream.
type wsMessage struct {
	Event string         `json:"event,omitempty"`
	Code  string         `json:"code,omitempty"`
	Msg   string         `json:"msg,omitempty"`
	Arg   subscribeArg   `json:"arg"`
	Data  []wsTickerData `json:"data,omitempty"`
}

type wsTickerData struct {
	InstID  string `json:"instId"`
	Last    string `json:"last"`
	Open24h string `json:"open24h"`
	High24h string `json:"high24h"`
	Low24h  string `json:"low24h"`
	Vol24h  string `json:"vol24h"`
	Ts      string `json:"ts"`
}
