package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/media/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreatePhoto(ctx context.Context, db *gorm.DB, photo *domain.DetailPhoto) error {
	return db.WithContext(ctx).Create(photo).Error
}

func (r *repo) FindPhotosByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]domain.DetailPhoto, error) {
	var items []domain.DetailPhoto
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPhotoByID(ctx context.Context, db *gorm.DB, id int64) (*domain.DetailPhoto, error) {
	var p domain.DetailPhoto
	err := db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) DeletePhoto(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.DetailPhoto{}).Error
}

func (r *repo) CreateLink(ctx context.Context, db *gorm.DB, link *domain.Link) error {
	return db.WithContext(ctx).Create(link).Error
}

func (r *repo) FindAllLinks(ctx context.Context, db *gorm.DB) ([]domain.Link, error) {
	var items []domain.Link
	if err := db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteLink(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Link{}).Error
}
