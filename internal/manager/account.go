package manager

import (
	"context"
	"log/slog"

	"okx_go/internal/domain"
)

// AccountManager reads balances, positions and account configuration from the
// exchange. Every failure surfaces as a {code:"-1"} envelope value; callers
// never see an error or panic. No state, no caching, no retries.
type AccountManager struct {
	gw     domain.Gateway
	logger *slog.Logger
}

// NewAccountManager creates an AccountManager.
func NewAccountManager(gw domain.Gateway) *AccountManager {
	return &AccountManager{
		gw:     gw,
		logger: slog.Default().With("module", "account_manager"),
	}
}

// GetBalance fetches account balances. ccy optionally restricts to one
// currency (e.g. "BTC", "USDT").
func (m *AccountManager) GetBalance(ctx context.Context, ccy string) *domain.Envelope {
	env, err := m.gw.GetBalance(ctx, ccy)
	if err != nil {
		m.logger.Error("Balance request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	if !env.IsOK() {
		m.logger.Warn("Balance request rejected", slog.String("code", env.Code), slog.String("msg", env.Msg))
	}
	return env
}

// GetPositions fetches open positions. instType defaults to "SWAP".
func (m *AccountManager) GetPositions(ctx context.Context, instType string) *domain.Envelope {
	if instType == "" {
		instType = "SWAP"
	}
	env, err := m.gw.GetPositions(ctx, instType)
	if err != nil {
		m.logger.Error("Positions request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	return env
}

// GetAccountConfig fetches the account configuration.
func (m *AccountManager) GetAccountConfig(ctx context.Context) *domain.Envelope {
	env, err := m.gw.GetAccountConfig(ctx)
	if err != nil {
		m.logger.Error("Account config request failed", slog.Any("error", err))
		return domain.Fail(err)
	}
	return env
}
