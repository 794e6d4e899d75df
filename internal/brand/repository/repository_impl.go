package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/brand/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, brand *domain.Brand) error {
	return db.WithContext(ctx).Create(brand).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Brand, error) {
	var b domain.Brand
	err := db.WithContext(ctx).Where("id = ?", id).Take(&b).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Brand, error) {
	var items []domain.Brand
	if err := db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Brand{}).Error
}
