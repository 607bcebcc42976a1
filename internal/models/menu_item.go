package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	Price         float64        `json:"price" gorm:"not null"`
	Category      string         `json:"category" gorm:"not null"`
	Description   string         `json:"description" gorm:"type:text"`
	ImageURL      string         `json:"image_url"`
	StockItemID   *uint          `json:"stock_item_id"`
	StockRequired float64        `json:"stock_required" gorm:"default:0"` // stock units consumed per unit ordered
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"unique;not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
