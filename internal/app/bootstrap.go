package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"okx_go/internal/domain"
	"okx_go/internal/infra"
	"okx_go/internal/infra/okx"
	"okx_go/internal/infra/storage"
	"okx_go/internal/manager"
	"okx_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Storage    *storage.Storage
	Gateway    *okx.Client
	Account    *manager.AccountManager
	Public     *manager.PublicDataManager
	Trader     *manager.TradeManager
	Tickers    *service.TickerService
	Downloader *infra.IconDownloader
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, DB, gateway, managers)
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping OKX Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	if cfg.API.OKX.DemoMode {
		slog.Info("⚠️ Demo trading mode is active")
	}

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Database initialized")

	// 4. Gateway client and managers
	b.Gateway = okx.NewClient(cfg)
	b.Account = manager.NewAccountManager(b.Gateway)
	b.Public = manager.NewPublicDataManager(b.Gateway)
	b.Trader = manager.NewTradeManager(b.Gateway, store)
	b.Tickers = service.NewTickerService()
	slog.Info("✅ Managers initialized")

	// 5. Icon downloader for the UI layer
	downloader, err := infra.NewIconDownloader()
	if err != nil {
		return err
	}
	b.Downloader = downloader

	return nil
}

// SyncAssets refreshes the instrument cache and icons in the background.
func (b *Bootstrap) SyncAssets(ctx context.Context) {
	slog.Info("🔄 Starting instrument synchronization...")

	configured := make(map[string]bool, len(b.Config.API.OKX.Symbols))
	for _, id := range b.Config.API.OKX.Symbols {
		configured[id] = true
	}

	// One instruments round trip covers every configured symbol
	env := b.Public.GetInstruments(ctx, "SPOT")
	if !env.IsOK() {
		slog.Warn("Instrument sync skipped", slog.String("code", env.Code), slog.String("msg", env.Msg))
		return
	}

	rows := make([]domain.InstrumentRow, 0, len(configured))
	for _, row := range env.InstrumentRows() {
		if configured[row.InstID] {
			rows = append(rows, row)
		}
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent icon downloads

	for _, row := range rows {
		wg.Add(1)
		go func(row domain.InstrumentRow) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			inst := &domain.InstrumentInfo{
				InstID:    row.InstID,
				BaseCcy:   row.BaseCcy,
				QuoteCcy:  row.QuoteCcy,
				InstType:  row.InstType,
				IsActive:  row.State == "live",
				UpdatedAt: time.Now(),
			}

			// Preserve user state across syncs
			if existing, _ := b.Storage.GetInstrument(row.InstID); existing != nil {
				inst.IsFavorite = existing.IsFavorite
				inst.IconPath = existing.IconPath
				inst.LastSyncedAt = existing.LastSyncedAt
			}

			if err := b.Storage.UpsertInstrument(inst); err != nil {
				slog.Error("Failed to upsert instrument", slog.String("inst_id", row.InstID), slog.Any("error", err))
			}

			baseCcy := inst.BaseCcy
			if baseCcy == "" {
				baseCcy, _, _ = strings.Cut(row.InstID, "-")
			}

			path, err := b.Downloader.DownloadIcon(baseCcy)
			if err != nil {
				slog.Warn("Failed to download icon", slog.String("ccy", baseCcy), slog.Any("error", err))
			} else if path != "" {
				inst.IconPath = path
				inst.LastSyncedAt = time.Now()
				b.Storage.UpsertInstrument(inst)
			}
		}(row)
	}

	wg.Wait()
	slog.Info("✨ Instrument synchronization completed", slog.Int("instruments", len(rows)))
}
