package manager

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"okx_go/internal/domain"
	"okx_go/internal/infra/storage"
)

// stubGateway implements domain.Gateway with per-call hooks. Unset hooks fail
// the test so each case declares exactly the traffic it expects.
type stubGateway struct {
	t *testing.T

	balance       func(ccy string) (*domain.Envelope, error)
	positions     func(instType string) (*domain.Envelope, error)
	accountConfig func() (*domain.Envelope, error)
	instruments   func(instType string) (*domain.Envelope, error)
	candles       func(instID, bar string, limit int) (*domain.Envelope, error)
	markPrice     func(instType, instID string) (*domain.Envelope, error)
	ticker        func(instID string) (*domain.Envelope, error)
	placeOrder    func(req domain.PlaceOrderRequest) (*domain.Envelope, error)
	cancelOrder   func(instID, ordID string) (*domain.Envelope, error)
	orderDetails  func(instID, ordID string) (*domain.Envelope, error)
}

func (s *stubGateway) GetBalance(_ context.Context, ccy string) (*domain.Envelope, error) {
	if s.balance == nil {
		s.t.Fatal("unexpected GetBalance call")
	}
	return s.balance(ccy)
}

func (s *stubGateway) GetPositions(_ context.Context, instType string) (*domain.Envelope, error) {
	if s.positions == nil {
		s.t.Fatal("unexpected GetPositions call")
	}
	return s.positions(instType)
}

func (s *stubGateway) GetAccountConfig(_ context.Context) (*domain.Envelope, error) {
	if s.accountConfig == nil {
		s.t.Fatal("unexpected GetAccountConfig call")
	}
	return s.accountConfig()
}

func (s *stubGateway) GetInstruments(_ context.Context, instType string) (*domain.Envelope, error) {
	if s.instruments == nil {
		s.t.Fatal("unexpected GetInstruments call")
	}
	return s.instruments(instType)
}

func (s *stubGateway) GetCandlesticks(_ context.Context, instID, bar string, limit int) (*domain.Envelope, error) {
	if s.candles == nil {
		s.t.Fatal("unexpected GetCandlesticks call")
	}
	return s.candles(instID, bar, limit)
}

func (s *stubGateway) GetMarkPrice(_ context.Context, instType, instID string) (*domain.Envelope, error) {
	if s.markPrice == nil {
		s.t.Fatal("unexpected GetMarkPrice call")
	}
	return s.markPrice(instType, instID)
}

func (s *stubGateway) GetTicker(_ context.Context, instID string) (*domain.Envelope, error) {
	if s.ticker == nil {
		s.t.Fatal("unexpected GetTicker call")
	}
	return s.ticker(instID)
}

func (s *stubGateway) PlaceOrder(_ context.Context, req domain.PlaceOrderRequest) (*domain.Envelope, error) {
	if s.placeOrder == nil {
		s.t.Fatal("unexpected PlaceOrder call")
	}
	return s.placeOrder(req)
}

func (s *stubGateway) CancelOrder(_ context.Context, instID, ordID string) (*domain.Envelope, error) {
	if s.cancelOrder == nil {
		s.t.Fatal("unexpected CancelOrder call")
	}
	return s.cancelOrder(instID, ordID)
}

func (s *stubGateway) GetOrderDetails(_ context.Context, instID, ordID string) (*domain.Envelope, error) {
	if s.orderDetails == nil {
		s.t.Fatal("unexpected GetOrderDetails call")
	}
	return s.orderDetails(instID, ordID)
}

func setupTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return store
}

func okEnvelope(data string) *domain.Envelope {
	return &domain.Envelope{Code: "0", Data: json.RawMessage(data)}
}

var errNetwork = errors.New("dial tcp: connection refused")
