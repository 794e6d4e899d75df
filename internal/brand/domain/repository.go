package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, brand *Brand) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Brand, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Brand, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
