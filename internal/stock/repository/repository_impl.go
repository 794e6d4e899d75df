package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/stock/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, stock *domain.Stock) error {
	return db.WithContext(ctx).Create(stock).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Stock, error) {
	var s domain.Stock
	err := db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.Stock, error) {
	var items []domain.Stock
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("size ASC, color ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Stock{}).Error
}
