package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"okx_go/internal/app"
	"okx_go/internal/infra"
	"okx_go/internal/infra/okx"

	"github.com/joho/godotenv"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. Secrets from .env, if present
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	// 3. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize("configs/config.yaml"); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 4. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Background Instrument Sync
	go bootstrap.SyncAssets(ctx)

	cfg := bootstrap.Config

	// 6. Live Ticker Stream
	bootstrap.Tickers.StartProcessor(ctx)
	if len(cfg.API.OKX.Symbols) > 0 {
		worker := okx.NewTickerWorker(cfg, bootstrap.Tickers.Inbox())
		if err := worker.Connect(ctx); err != nil {
			slog.Error("Failed to start ticker stream", slog.Any("error", err))
		} else {
			defer worker.Disconnect()
			slog.InfoContext(ctx, "✅ Ticker stream started", slog.Int("symbols", len(cfg.API.OKX.Symbols)))
		}
	}

	// 7. Startup balance snapshot (private endpoints need credentials)
	if cfg.HasCredentials() {
		if env := bootstrap.Account.GetBalance(ctx, ""); env.IsOK() {
			slog.InfoContext(ctx, "✅ Account reachable")
		} else {
			slog.Warn("Balance check failed", slog.String("code", env.Code), slog.String("msg", env.Msg))
		}
	} else {
		slog.Warn("No API credentials configured; trading endpoints disabled")
	}

	// 8. Order Reconciliation Loop
	go func() {
		interval := time.Duration(cfg.Sync.RefreshIntervalSec) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bootstrap.Trader.RefreshOpenOrders(ctx)
			}
		}
	}()

	slog.InfoContext(ctx, "✨ OKX Go fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	snap := infra.GlobalMetrics.Snapshot()
	slog.Info("👋 Shutting down gracefully...",
		slog.Uint64("gateway_calls", snap.GatewayCalls),
		slog.Uint64("gateway_errors", snap.GatewayErrors),
		slog.Uint64("orders_mirrored", snap.OrdersMirrored),
	)
}
