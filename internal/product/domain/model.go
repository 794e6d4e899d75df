package domain

import (
	"time"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
)

type Product struct {
	ID          int64               `json:"id" gorm:"primaryKey"`
	Name        string              `json:"name" gorm:"type:text;not null"`
	Slug        string              `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description *string             `json:"description,omitempty" gorm:"type:text"`
	CoverURL    *string             `json:"cover_url,omitempty" gorm:"column:cover_url;type:text"`
	Active      bool                `json:"active" gorm:"not null;default:true"`
	Brands      []branddomain.Brand `json:"brands,omitempty" gorm:"many2many:product_brands"`
	CreatedAt   time.Time           `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time           `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
