package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/price/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, price *domain.Price) error {
	return db.WithContext(ctx).Create(price).Error
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, productID int64) ([]domain.Price, error) {
	var items []domain.Price
	err := db.WithContext(ctx).
		Where("product_id = ? AND active = ?", productID, true).
		Order("start_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CloseActive(ctx context.Context, db *gorm.DB, id int64, endAt, updatedAt time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Price{}).
		Where("id = ? AND active = ?", id, true).
		Updates(map[string]any{
			"active":     false,
			"end_at":     endAt,
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.Price, error) {
	var items []domain.Price
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("start_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ProductExists(ctx context.Context, db *gorm.DB, productID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("products").
		Where("id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
