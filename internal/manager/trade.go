package manager

import (
	"context"
	"errors"
	"log/slog"

	"okx_go/internal/domain"
	"okx_go/internal/infra"
	"okx_go/internal/infra/storage"

	"github.com/shopspring/decimal"
)

// TradeManager is the only component that mutates the local order store. It
// places and cancels orders on the exchange and mirrors their state into
// local rows. The exchange stays authoritative: a failed local write is
// rolled back and logged but never alters the gateway-facing result.
type TradeManager struct {
	gw     domain.Gateway
	store  *storage.Storage
	logger *slog.Logger
}

// NewTradeManager creates a TradeManager.
func NewTradeManager(gw domain.Gateway, store *storage.Storage) *TradeManager {
	return &TradeManager{
		gw:     gw,
		store:  store,
		logger: slog.Default().With("module", "trade_manager"),
	}
}

// PlaceOrder submits an order and, on exchange-confirmed placement, inserts a
// mirror row keyed by the exchange-assigned order id. The limit price is only
// forwarded for limit orders and the client order id only when supplied.
func (m *TradeManager) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) *domain.Envelope {
	if req.OrdType != domain.OrderTypeLimit {
		req.Px = ""
	}

	m.logger.Info("Placing order",
		slog.String("inst_id", req.InstID),
		slog.String("side", req.Side),
		slog.String("ord_type", req.OrdType),
		slog.String("sz", req.Sz),
	)

	env, err := m.gw.PlaceOrder(ctx, req)
	if err != nil {
		m.logger.Error("Order placement failed", slog.Any("error", err))
		return domain.Fail(err)
	}

	if rows := env.OrderRows(); env.IsOK() && len(rows) > 0 {
		m.mirrorPlacedOrder(rows[0], req)
	}

	return env
}

// mirrorPlacedOrder writes the local mirror row for a confirmed placement.
// The remote order stands even if this fails: the error is logged for later
// reconciliation, never propagated.
func (m *TradeManager) mirrorPlacedOrder(row domain.OrderRow, req domain.PlaceOrderRequest) {
	quantity, err := decimal.NewFromString(req.Sz)
	if err != nil {
		m.logger.Error("Order size not mirrorable", slog.String("sz", req.Sz), slog.Any("error", err))
		return
	}

	order := &domain.Order{
		OrderID:   row.OrdID,
		Symbol:    req.InstID,
		Side:      req.Side,
		OrderType: req.OrdType,
		Quantity:  quantity,
		Status:    domain.OrderStatusPending,
	}
	if row.State != "" {
		order.Status = row.State
	}
	if req.Px != "" {
		if px, err := decimal.NewFromString(req.Px); err == nil {
			order.Price = decimal.NewNullDecimal(px)
		}
	}

	if err := m.store.InsertOrder(order); err != nil {
		m.logger.Error("Failed to mirror order locally",
			slog.String("order_id", row.OrdID),
			slog.Any("error", err),
		)
		return
	}

	infra.GlobalMetrics.RecordOrderMirrored()
	m.logger.Info("Order mirrored", slog.String("order_id", order.OrderID), slog.String("status", order.Status))
}

// GetOrderDetails fetches an order's current state from the exchange and
// reconciles the matching local row: status, average fill price and the
// updated timestamp. A missing local row is logged and left alone — the order
// may have been placed outside this application. The envelope is returned
// regardless of local reconciliation outcome.
func (m *TradeManager) GetOrderDetails(ctx context.Context, instID, ordID string) *domain.Envelope {
	env, err := m.gw.GetOrderDetails(ctx, instID, ordID)
	if err != nil {
		m.logger.Error("Order details request failed", slog.String("ord_id", ordID), slog.Any("error", err))
		return domain.Fail(err)
	}

	if rows := env.OrderRows(); env.IsOK() && len(rows) > 0 {
		m.reconcileOrder(rows[0])
	}

	return env
}

func (m *TradeManager) reconcileOrder(row domain.OrderRow) {
	var avgPx *decimal.Decimal
	if row.AvgPx != "" {
		if px, err := decimal.NewFromString(row.AvgPx); err == nil {
			avgPx = &px
		}
	}

	err := m.store.ApplyRemoteState(row.OrdID, row.State, avgPx)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		m.logger.Warn("Order not mirrored locally", slog.String("order_id", row.OrdID))
	case err != nil:
		m.logger.Error("Failed to reconcile order", slog.String("order_id", row.OrdID), slog.Any("error", err))
	default:
		m.logger.Info("Order reconciled",
			slog.String("order_id", row.OrdID),
			slog.String("status", row.State),
		)
	}
}

// ListLocalOrders returns locally mirrored orders newest-first, optionally
// filtered to one instrument. Pure local read, no gateway call.
func (m *TradeManager) ListLocalOrders(symbol string) ([]domain.Order, error) {
	return m.store.ListOrders(symbol)
}

// CancelOrder forwards a cancellation to the exchange. The local mirror is
// deliberately not touched; it catches up on the next GetOrderDetails call.
func (m *TradeManager) CancelOrder(ctx context.Context, instID, ordID string) *domain.Envelope {
	env, err := m.gw.CancelOrder(ctx, instID, ordID)
	if err != nil {
		m.logger.Error("Order cancellation failed", slog.String("ord_id", ordID), slog.Any("error", err))
		return domain.Fail(err)
	}
	return env
}

// RefreshOpenOrders reconciles every local order that may still change on the
// exchange. Returns how many detail fetches succeeded.
func (m *TradeManager) RefreshOpenOrders(ctx context.Context) int {
	orders, err := m.store.ListOpenOrders()
	if err != nil {
		m.logger.Error("Failed to list open orders", slog.Any("error", err))
		return 0
	}

	refreshed := 0
	for i := range orders {
		select {
		case <-ctx.Done():
			return refreshed
		default:
		}
		if env := m.GetOrderDetails(ctx, orders[i].Symbol, orders[i].OrderID); env.IsOK() {
			refreshed++
		}
	}

	if len(orders) > 0 {
		m.logger.Debug("Open orders refreshed", slog.Int("total", len(orders)), slog.Int("ok", refreshed))
	}
	return refreshed
}
