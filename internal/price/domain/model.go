// Package domain contains the price ledger types. Each product carries a
// timeline of non-overlapping price intervals; at most one interval is
// active at any moment and the active interval's end is the far-future
// sentinel until a newer price supersedes it.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SentinelEnd marks an interval with no end yet. Comparisons must treat it
// as greater than any real date.
var SentinelEnd = time.Date(2999, time.December, 31, 12, 0, 59, 0, time.UTC)

type Price struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	ProductID int64           `json:"product_id" gorm:"column:product_id;not null;index:ix_prices_product_active,priority:1"`
	Value     decimal.Decimal `json:"value" gorm:"type:decimal(12,2);not null"`
	StartAt   time.Time       `json:"start_at" gorm:"column:start_at;not null"`
	EndAt     time.Time       `json:"end_at" gorm:"column:end_at;not null"`
	Active    bool            `json:"active" gorm:"not null;default:false;index:ix_prices_product_active,priority:2"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Price) TableName() string { return "prices" }
