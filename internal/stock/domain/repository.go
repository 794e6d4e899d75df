package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, stock *Stock) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Stock, error)
	FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]Stock, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
