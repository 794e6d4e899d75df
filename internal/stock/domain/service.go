package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByProduct(ctx context.Context, productID string) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type Response struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Size      Size      `json:"size"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidSize     = errors.New("invalid_size")
	ErrInvalidColor    = errors.New("invalid_color")
	ErrNotFound        = errors.New("not_found")
	ErrProductNotFound = errors.New("product_not_found")
	ErrDeletionBlocked = errors.New("deletion_blocked")
)
