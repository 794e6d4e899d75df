package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	UserID    int64           `json:"user_id" gorm:"column:user_id;not null;index"`
	Status    bool            `json:"status" gorm:"not null;default:false"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Address   string          `json:"address" gorm:"type:text;not null"`
	Details   []OrderDetail   `json:"details" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

type OrderDetail struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	OrderID  int64 `json:"order_id" gorm:"column:order_id;not null;index"`
	StockID  int64 `json:"stock_id" gorm:"column:stock_id;not null;index"`
	Quantity int   `json:"quantity" gorm:"not null"`
}

func (OrderDetail) TableName() string { return "order_details" }
