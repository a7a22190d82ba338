package manager

import (
	"context"
	"encoding/json"
	"log/slog"

	"okx_go/internal/domain"
)

// PublicDataManager reads instrument metadata and market data. Read-only,
// no authentication required, same failure-as-value policy as AccountManager.
type PublicDataManager struct {
	gw     domain.Gateway
	logger *slog.Logger
}

// NewPublicDataManager creates a PublicDataManager.
func NewPublicDataManager(gw domain.Gateway) *PublicDataManager {
	return &PublicDataManager{
		gw:     gw,
		logger: slog.Default().With("module", "public_data_manager"),
	}
}

// GetInstruments lists instruments. instType defaults to "SPOT".
func (m *PublicDataManager) GetInstruments(ctx context.Context, instType string) *domain.Envelope {
	if instType == "" {
		instType = "SPOT"
	}
	env, err := m.gw.GetInstruments(ctx, instType)
	if err != nil {
		m.logger.Error("Instruments request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	if env.IsOK() {
		m.logger.Debug("Instruments fetched", slog.String("inst_type", instType))
	}
	return env
}

// GetCandlesticks fetches OHLCV rows. bar defaults to "1m", limit to 100.
// Unlike the other readers it returns the raw rows, and an empty slice on ANY
// failure, so chart consumers never branch on an envelope.
func (m *PublicDataManager) GetCandlesticks(ctx context.Context, instID, bar string, limit int) [][]string {
	if bar == "" {
		bar = "1m"
	}
	if limit <= 0 {
		limit = 100
	}

	env, err := m.gw.GetCandlesticks(ctx, instID, bar, limit)
	if err != nil {
		m.logger.Error("Candlesticks request failed", slog.String("inst_id", instID), slog.Any("error", err))
		return [][]string{}
	}
	if !env.IsOK() {
		m.logger.Warn("Candlesticks request rejected", slog.String("code", env.Code), slog.String("msg", env.Msg))
		return [][]string{}
	}

	var rows [][]string
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		m.logger.Error("Candlesticks payload malformed", slog.Any("error", err))
		return [][]string{}
	}
	return rows
}

// GetMarkPrice fetches the mark price for an instrument.
func (m *PublicDataManager) GetMarkPrice(ctx context.Context, instType, instID string) *domain.Envelope {
	env, err := m.gw.GetMarkPrice(ctx, instType, instID)
	if err != nil {
		m.logger.Error("Mark price request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	return env
}

// GetTicker fetches the latest ticker for an instrument.
func (m *PublicDataManager) GetTicker(ctx context.Context, instID string) *domain.Envelope {
	env, err := m.gw.GetTicker(ctx, instID)
	if err != nil {
		m.logger.Error("Ticker request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	return env
}
