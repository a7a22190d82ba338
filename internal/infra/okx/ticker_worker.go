package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"okx_go/internal/domain"
	"okx_go/internal/infra"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// TickerWorker streams live tickers from the OKX public WebSocket into a
// channel of batches. Reconnects with exponential backoff.
type TickerWorker struct {
	wsURL      string
	instIDs    []string
	tickerChan chan<- []*domain.Ticker
	logger     *slog.Logger
	conn       *websocket.Conn
	mu         sync.RWMutex
	writeMu    sync.Mutex
	connected  bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewTickerWorker creates a worker subscribed to the given instruments.
func NewTickerWorker(cfg *infra.Config, tickerChan chan<- []*domain.Ticker) *TickerWorker {
	wsURL := cfg.API.OKX.WSPublicURL
	if wsURL == "" {
		wsURL = publicWSURL
	}
	return &TickerWorker{
		wsURL:      wsURL,
		instIDs:    cfg.API.OKX.Symbols,
		tickerChan: tickerChan,
		logger:     slog.Default().With("module", "okx_ticker_worker"),
	}
}

// Connect starts the connection loop in the background.
func (w *TickerWorker) Connect(ctx context.Context) error {
	if len(w.instIDs) == 0 {
		return fmt.Errorf("no instruments configured")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

// IsConnected reports the current connection state.
func (w *TickerWorker) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Disconnect stops the worker and waits for its goroutines.
func (w *TickerWorker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}

func (w *TickerWorker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()

	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			w.logger.Warn("Ticker stream connection failed",
				slog.Any("error", err),
				slog.Int("retry", retryCount),
			)
			delay := calculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		}

		retryCount = 0
		w.readLoop(ctx)
	}
}

func (w *TickerWorker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	header := make(http.Header)
	header.Add("User-Agent", infra.DefaultUserAgent)

	conn, _, err := dialer.DialContext(ctx, w.wsURL, header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.connected = true
	w.mu.Unlock()
	infra.GlobalMetrics.SetStreamConnected(true)

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return fmt.Errorf("subscribe failed: %w", err)
	}

	go w.pingLoop(ctx)

	w.logger.Info("Ticker stream connected", slog.Int("instruments", len(w.instIDs)))
	return nil
}

func (w *TickerWorker) subscribe() error {
	args := make([]subscribeArg, 0, len(w.instIDs))
	for _, id := range w.instIDs {
		args = append(args, subscribeArg{Channel: "tickers", InstID: id})
	}
	b, err := json.Marshal(subscribeRequest{Op: "subscribe", Args: args})
	if err != nil {
		return err
	}
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *TickerWorker) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// OKX expects a literal "ping" text frame
			if err := w.threadSafeWrite(websocket.TextMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

func (w *TickerWorker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no connection")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *TickerWorker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		if string(msg) == "pong" {
			continue
		}
		w.handleMessage(msg)
	}
}

func (w *TickerWorker) handleMessage(msg []byte) {
	tickers := parseTickerMessage(msg)
	if len(tickers) == 0 {
		return
	}
	select {
	case w.tickerChan <- tickers:
	default:
		// Drop the batch if the consumer is behind; the next push supersedes it
	}
}

// parseTickerMessage decodes a public stream frame into domain tickers.
// Subscription acks, errors and other channels yield an empty slice.
func parseTickerMessage(msg []byte) []*domain.Ticker {
	var resp wsMessage
	if err := json.Unmarshal(msg, &resp); err != nil {
		return nil
	}
	if resp.Event == "error" {
		slog.Warn("Ticker stream error frame", slog.String("code", resp.Code), slog.String("msg", resp.Msg))
		return nil
	}
	if resp.Event != "" || resp.Arg.Channel != "tickers" || len(resp.Data) == 0 {
		return nil
	}

	tickers := make([]*domain.Ticker, 0, len(resp.Data))
	for _, d := range resp.Data {
		last, err := decimal.NewFromString(d.Last)
		if err != nil {
			continue
		}
		t := &domain.Ticker{
			InstID:  d.InstID,
			Last:    last,
			Open24h: parseDecimalOrZero(d.Open24h),
			High24h: parseDecimalOrZero(d.High24h),
			Low24h:  parseDecimalOrZero(d.Low24h),
			Vol24h:  parseDecimalOrZero(d.Vol24h),
		}
		if ts, err := strconv.ParseInt(d.Ts, 10, 64); err == nil {
			t.TsMilli = ts
		}
		tickers = append(tickers, t)
	}
	return tickers
}

func parseDecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// calculateBackoff returns the reconnect delay for a retry attempt,
// doubling from baseDelay up to maxDelay.
func calculateBackoff(retryCount int) time.Duration {
	delay := baseDelay
	for i := 0; i < retryCount; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	return delay
}

func (w *TickerWorker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.connected = false
	infra.GlobalMetrics.SetStreamConnected(false)
}
