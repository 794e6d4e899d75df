package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Create persists an order with its line items for the authenticated
	// caller. The caller identity comes from the request context.
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	// List returns only the caller's own orders.
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type CreateItem struct {
	StockID  string `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

type CreateRequest struct {
	Address string          `json:"address"`
	Total   decimal.Decimal `json:"total"`
	Items   []CreateItem    `json:"items"`
}

type ItemResponse struct {
	ID       string `json:"id"`
	StockID  string `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

type Response struct {
	ID        string          `json:"id"`
	Status    bool            `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Address   string          `json:"address"`
	Items     []ItemResponse  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidAddress  = errors.New("invalid_address")
	ErrInvalidTotal    = errors.New("invalid_total")
	ErrNoItems         = errors.New("no_items")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrStockNotFound   = errors.New("stock_not_found")
	ErrNotFound        = errors.New("not_found")
)
