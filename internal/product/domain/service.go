package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/capstore/capstore/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, id string) (*DetailResponse, error)
	// Featured returns products whose name matches the configured
	// storefront predicate.
	Featured(ctx context.Context) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	// Search matches product name or associated brand name.
	Search  string
	SortBy  string // "id" or "price"
	OrderBy string // "asc" or "desc"
	Page    pagination.Page
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	Active      *bool    `json:"active"`
	BrandIDs    []string `json:"brand_ids"`
}

type UpdateRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	Active      *bool    `json:"active"`
	BrandIDs    []string `json:"brand_ids"`
}

type BrandRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Response struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	Active      bool       `json:"active"`
	Brands      []BrandRef `json:"brands,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListResponse struct {
	Items    []Response          `json:"items"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// DetailResponse augments the product with its derived current price. A nil
// CurrentPrice means the product has never been priced.
type DetailResponse struct {
	Response
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Photos       []Photo          `json:"photos"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidSort     = errors.New("invalid_sort")
	ErrNotFound        = errors.New("not_found")
	ErrBrandNotFound   = errors.New("brand_not_found")
	ErrDeletionBlocked = errors.New("deletion_blocked")
)
