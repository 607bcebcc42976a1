package models

import (
	"time"

	"gorm.io/gorm"
)

type Table struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"not null"`
	Capacity       int            `json:"capacity" gorm:"not null"`
	Status         string         `json:"status" gorm:"default:'Available'"`
	CurrentOrderID *uint          `json:"current_order_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type TableStatus string

const (
	TableAvailable    TableStatus = "Available"
	TableOccupied     TableStatus = "Occupied"
	TableNeedsBilling TableStatus = "Needs Billing"
)
