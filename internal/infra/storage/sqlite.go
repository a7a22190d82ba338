package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"okx_go/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage wraps a single long-lived SQLite session shared by all callers.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the SQLite database. An empty path resolves
// to the OS config directory.
func NewStorage(path string) (*Storage, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		dbPath, err = getDefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Order{}, &domain.InstrumentInfo{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDefaultDBPath resolves the database file path based on OS
func getDefaultDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "OKXGo", "data", "okx_go.db"), nil
}

// ======================================================================================
// Order Operations (TradeManager is the only caller)
// ======================================================================================

// InsertOrder creates a new order mirror row inside a transaction. A duplicate
// exchange order id violates the unique index and rolls the insert back.
func (s *Storage) InsertOrder(order *domain.Order) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// GetOrderByOrderID fetches the mirror row for an exchange order id.
// Not found is not an error.
func (s *Storage) GetOrderByOrderID(orderID string) (*domain.Order, error) {
	var order domain.Order
	err := s.db.First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ApplyRemoteState overwrites the mirror row's status with the exchange's
// latest report and, when an average fill price was reported, the price.
// Returns domain.ErrOrderNotFound when no row matches; the whole update runs
// in one transaction.
func (s *Storage) ApplyRemoteState(orderID, state string, avgPx *decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if state != "" {
			order.Status = state
		}
		if avgPx != nil {
			order.Price = decimal.NewNullDecimal(*avgPx)
		}

		// Save refreshes UpdatedAt; CreatedAt stays untouched
		return tx.Save(&order).Error
	})
}

// ListOrders returns local orders newest-first, optionally filtered to one
// instrument.
func (s *Storage) ListOrders(symbol string) ([]domain.Order, error) {
	var orders []domain.Order
	query := s.db.Order("created_at DESC")
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}
	err := query.Find(&orders).Error
	return orders, err
}

// ListOpenOrders returns local orders whose status may still change on the
// exchange, newest-first.
func (s *Storage) ListOpenOrders() ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.
		Where("status NOT IN ?", []string{domain.OrderStatusFilled, domain.OrderStatusCanceled}).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ======================================================================================
// Instrument Operations
// ======================================================================================

// UpsertInstrument creates or updates instrument metadata.
func (s *Storage) UpsertInstrument(inst *domain.InstrumentInfo) error {
	return s.db.Save(inst).Error
}

// GetInstrument retrieves instrument metadata. Not found is not an error.
func (s *Storage) GetInstrument(instID string) (*domain.InstrumentInfo, error) {
	var inst domain.InstrumentInfo
	err := s.db.First(&inst, "inst_id = ?", instID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListInstruments retrieves all cached instruments.
func (s *Storage) ListInstruments() ([]domain.InstrumentInfo, error) {
	var insts []domain.InstrumentInfo
	err := s.db.Order("inst_id").Find(&insts).Error
	return insts, err
}

// ToggleFavorite flips the favorite flag of an instrument.
func (s *Storage) ToggleFavorite(instID string) (bool, error) {
	var inst domain.InstrumentInfo
	if err := s.db.First(&inst, "inst_id = ?", instID).Error; err != nil {
		return false, err
	}

	inst.IsFavorite = !inst.IsFavorite
	err := s.db.Save(&inst).Error
	return inst.IsFavorite, err
}
