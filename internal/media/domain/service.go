package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	AddPhoto(ctx context.Context, req AddPhotoRequest) (*PhotoResponse, error)
	ListPhotos(ctx context.Context, productID string) ([]PhotoResponse, error)
	DeletePhoto(ctx context.Context, id string) error

	CreateLink(ctx context.Context, req CreateLinkRequest) (*LinkResponse, error)
	ListLinks(ctx context.Context) ([]LinkResponse, error)
	DeleteLink(ctx context.Context, id string) error
}

type AddPhotoRequest struct {
	ProductID string `json:"-"`
	URL       string `json:"url"`
}

type PhotoResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateLinkRequest struct {
	URL      string  `json:"url"`
	CoverURL *string `json:"cover_url"`
}

type LinkResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CoverURL  *string   `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidURL      = errors.New("invalid_url")
	ErrNotFound        = errors.New("not_found")
	ErrProductNotFound = errors.New("product_not_found")
)
