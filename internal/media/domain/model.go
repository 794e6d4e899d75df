package domain

import "time"

// DetailPhoto is a supplementary product image, stored by URL only.
type DetailPhoto struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"product_id" gorm:"column:product_id;not null;index"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DetailPhoto) TableName() string { return "detail_photos" }

// Link is a standalone promoted URL with an optional cover image.
type Link struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	CoverURL  *string   `json:"cover_url,omitempty" gorm:"column:cover_url;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Link) TableName() string { return "links" }
