package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/order/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		Take(&o).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).
		Preload("Details").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
