package models

import (
	"time"

	"gorm.io/gorm"
)

type StockItem struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"not null"`
	Quantity          float64        `json:"quantity" gorm:"not null"` // may go negative: deficits are tracked, not clamped
	Unit              string         `json:"unit" gorm:"not null"`     // e.g. kg, bottles, patties
	LowStockThreshold float64        `json:"low_stock_threshold"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// IsLowStock reports whether the item is at or below its reorder threshold.
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.LowStockThreshold
}
