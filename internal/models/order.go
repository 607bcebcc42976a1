package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	OrderNumber string         `json:"order_number" gorm:"unique;not null"`
	Type        string         `json:"type" gorm:"not null"` // dine_in, takeout
	TableID     *uint          `json:"table_id"`
	Items       []OrderItem    `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount float64        `json:"total_amount" gorm:"not null"`
	Status      string         `json:"status" gorm:"default:'Pending'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderType string

const (
	DineIn  OrderType = "dine_in"
	Takeout OrderType = "takeout"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPreparing OrderStatus = "Preparing"
	OrderReady     OrderStatus = "Ready"
	OrderServed    OrderStatus = "Served"
	OrderPaid      OrderStatus = "Paid"
	OrderCancelled OrderStatus = "Cancelled"
)

// allowedTransitions is the kitchen flow: forward one step at a time,
// back transitions only between Pending, Preparing and Ready, and
// cancellation before the food is ready. Served may be skipped, so
// Ready -> Paid is also allowed.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderPending, OrderCancelled},
	OrderReady:     {OrderServed, OrderPreparing, OrderPaid},
	OrderServed:    {OrderPaid},
	OrderPaid:      {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether s is one of the known order statuses.
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the order's lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

// IsDineIn reports whether the order is bound to a physical table.
func (o *Order) IsDineIn() bool {
	return o.Type == string(DineIn) && o.TableID != nil
}
