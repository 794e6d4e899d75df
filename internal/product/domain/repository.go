package domain

import (
	"context"

	"gorm.io/gorm"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
)

type ListFilter struct {
	Search  string
	SortBy  string
	OrderBy string
	Offset  int
	Limit   int
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, int64, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	ReplaceBrands(ctx context.Context, db *gorm.DB, product *Product, brands []branddomain.Brand) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
