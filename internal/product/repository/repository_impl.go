package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
	"github.com/capstore/capstore/internal/product/domain"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Preload("Brands").
		Where("id = ?", id).
		Take(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Product, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Product{})

	if q := strings.TrimSpace(filter.Search); q != "" {
		pattern := "%" + q + "%"
		stmt = stmt.
			Joins("LEFT JOIN product_brands ON product_brands.product_id = products.id").
			Joins("LEFT JOIN brands ON brands.id = product_brands.brand_id").
			Where("products.name LIKE ? OR brands.name LIKE ?", pattern, pattern).
			Distinct("products.*")
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "ASC"
	if strings.EqualFold(filter.OrderBy, "desc") {
		order = "DESC"
	}
	switch filter.SortBy {
	case "", "id":
		stmt = stmt.Order("products.id " + order)
	case "price":
		stmt = stmt.
			Joins("LEFT JOIN prices ON prices.product_id = products.id AND prices.active = ?", true).
			Order("prices.value " + order)
	}

	var items []domain.Product
	err := stmt.
		Preload("Brands").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Preload("Brands").
		Where("name = ?", name).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"cover_url":   product.CoverURL,
			"active":      product.Active,
			"updated_at":  product.UpdatedAt,
		}).Error
}

func (r *repo) ReplaceBrands(ctx context.Context, db *gorm.DB, product *domain.Product, brands []branddomain.Brand) error {
	return db.WithContext(ctx).
		Model(product).
		Association("Brands").
		Replace(brands)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).
		Select("Brands").
		Delete(&domain.Product{ID: id}).Error
}
