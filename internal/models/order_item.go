package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a line of an order. Name and UnitPrice are snapshots of the
// menu item at placement time, so later menu edits never change past orders.
type OrderItem struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OrderID    uint           `json:"order_id" gorm:"not null"`
	MenuItemID uint           `json:"menu_item_id" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	Quantity   int            `json:"quantity" gorm:"not null"`
	UnitPrice  float64        `json:"unit_price" gorm:"not null"`
	TotalPrice float64        `json:"total_price" gorm:"not null"`
	Note       string         `json:"note"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
