// Package domain contains the stock keeping types. A Stock row identifies a
// sellable variant (size and color of a product), not an inventory count.
package domain

import "time"

type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
	SizeXLarge Size = "XL"
)

// ValidSize reports whether s is one of the sellable sizes.
func ValidSize(s Size) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return true
	}
	return false
}

type Stock struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ProductID int64     `json:"product_id" gorm:"column:product_id;not null;index"`
	Size      Size      `json:"size" gorm:"type:text;not null"`
	Color     string    `json:"color" gorm:"type:text;not null;default:#FF0000"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Stock) TableName() string { return "stocks" }
