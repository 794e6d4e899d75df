package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, price *Price) error
	// FindActive returns every active row for the product, newest start first.
	// More than one row means a prior invariant violation; callers decide how
	// to react.
	FindActive(ctx context.Context, db *gorm.DB, productID int64) ([]Price, error)
	// CloseActive deactivates the row identified by id only if it is still
	// active, setting its end to endAt. The returned count is the number of
	// rows matched; zero means a concurrent writer already closed it.
	CloseActive(ctx context.Context, db *gorm.DB, id int64, endAt, updatedAt time.Time) (int64, error)
	FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]Price, error)
	ProductExists(ctx context.Context, db *gorm.DB, productID int64) (bool, error)
}
