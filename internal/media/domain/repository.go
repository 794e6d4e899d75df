package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreatePhoto(ctx context.Context, db *gorm.DB, photo *DetailPhoto) error
	FindPhotosByProduct(ctx context.Context, db *gorm.DB, productID int64) ([]DetailPhoto, error)
	FindPhotoByID(ctx context.Context, db *gorm.DB, id int64) (*DetailPhoto, error)
	DeletePhoto(ctx context.Context, db *gorm.DB, id int64) error

	CreateLink(ctx context.Context, db *gorm.DB, link *Link) error
	FindAllLinks(ctx context.Context, db *gorm.DB) ([]Link, error)
	DeleteLink(ctx context.Context, db *gorm.DB, id int64) error
}
