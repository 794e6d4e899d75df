package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// SetPrice appends a new active interval for the product, closing the
	// previous active interval at the new start. Concurrent calls for the
	// same product are serialized optimistically; the loser receives
	// ErrPriceConflict and may retry.
	SetPrice(ctx context.Context, req SetPriceRequest) (*Response, error)
	// CurrentPrice returns the single active interval for the product.
	CurrentPrice(ctx context.Context, productID string) (*Response, error)
	History(ctx context.Context, productID string) ([]Response, error)
}

type SetPriceRequest struct {
	ProductID string          `json:"product_id"`
	Value     decimal.Decimal `json:"value"`
	StartAt   *time.Time      `json:"start_at"`
}

type Response struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Value     decimal.Decimal `json:"value"`
	StartAt   time.Time       `json:"start_at"`
	EndAt     time.Time       `json:"end_at"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Cache is a read-through cache for current-price lookups. Only successful
// single-row results are cached; error conditions always hit the store.
type Cache interface {
	GetCurrent(ctx context.Context, productID int64) (*Response, bool)
	SetCurrent(ctx context.Context, productID int64, resp *Response)
	Invalidate(ctx context.Context, productID int64)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidValue         = errors.New("invalid_value")
	ErrInvalidStart         = errors.New("invalid_start")
	ErrProductNotFound      = errors.New("product_not_found")
	ErrPriceConflict        = errors.New("price_conflict")
	ErrNoActivePrice        = errors.New("no_active_price")
	ErrMultipleActivePrices = errors.New("multiple_active_prices")
)
