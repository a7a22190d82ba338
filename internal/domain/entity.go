package domain

import "time"

// InstrumentInfo caches exchange instrument metadata for display purposes.
// Kept in a table of its own; order rows are never touched through this type.
type InstrumentInfo struct {
	InstID       string    `gorm:"primaryKey" json:"inst_id"` // e.g. "BTC-USDT"
	BaseCcy      string    `json:"base_ccy"`
	QuoteCcy     string    `json:"quote_ccy"`
	InstType     string    `gorm:"index" json:"inst_type"` // SPOT, SWAP, ...
	IconPath     string    `json:"icon_path"`
	IsActive     bool      `gorm:"index" json:"is_active"`
	IsFavorite   bool      `gorm:"index" json:"is_favorite"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
