package manager

import (
	"context"
	"testing"

	"okx_go/internal/domain"
)

func TestAccountManager_GetBalance(t *testing.T) {
	gw := &stubGateway{t: t, balance: func(ccy string) (*domain.Envelope, error) {
		if ccy != "BTC" {
			t.Errorf("ccy = %q, want BTC", ccy)
		}
		return okEnvelope(`[{"totalEq":"1000"}]`), nil
	}}
	am := NewAccountManager(gw)

	env := am.GetBalance(context.Background(), "BTC")
	if !env.IsOK() {
		t.Errorf("expected success, got code %s", env.Code)
	}
	if len(env.Data) == 0 {
		t.Error("data must be returned unchanged")
	}
}

func TestAccountManager_FailureAsValue(t *testing.T) {
	gw := &stubGateway{t: t, balance: func(ccy string) (*domain.Envelope, error) {
		return nil, errNetwork
	}}
	am := NewAccountManager(gw)

	env := am.GetBalance(context.Background(), "")
	if env.Code != domain.CodeLocal {
		t.Errorf("expected code -1, got %s", env.Code)
	}
	if env.Msg == "" {
		t.Error("failure envelope must carry a description")
	}
}

func TestAccountManager_RemoteRejectionPassthrough(t *testing.T) {
	gw := &stubGateway{t: t, balance: func(ccy string) (*domain.Envelope, error) {
		return &domain.Envelope{Code: "50111", Msg: "Invalid OK-ACCESS-KEY"}, nil
	}}
	am := NewAccountManager(gw)

	env := am.GetBalance(context.Background(), "")
	if env.Code != "50111" || env.Msg != "Invalid OK-ACCESS-KEY" {
		t.Errorf("rejection must pass through unchanged, got %+v", env)
	}
}

func TestAccountManager_GetPositions_DefaultInstType(t *testing.T) {
	gw := &stubGateway{t: t, positions: func(instType string) (*domain.Envelope, error) {
		if instType != "SWAP" {
			t.Errorf("instType = %q, want SWAP default", instType)
		}
		return okEnvelope(`[]`), nil
	}}
	am := NewAccountManager(gw)

	if env := am.GetPositions(context.Background(), ""); !env.IsOK() {
		t.Errorf("expected success, got code %s", env.Code)
	}
}

func TestAccountManager_GetAccountConfig(t *testing.T) {
	gw := &stubGateway{t: t, accountConfig: func() (*domain.Envelope, error) {
		return okEnvelope(`[{"acctLv":"2"}]`), nil
	}}
	am := NewAccountManager(gw)

	if env := am.GetAccountConfig(context.Background()); !env.IsOK() {
		t.Errorf("expected success, got code %s", env.Code)
	}
}
