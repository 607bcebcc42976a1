package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionForwardPath(t *testing.T) {
	assert.True(t, CanTransition(OrderPending, OrderPreparing))
	assert.True(t, CanTransition(OrderPreparing, OrderReady))
	assert.True(t, CanTransition(OrderReady, OrderServed))
	assert.True(t, CanTransition(OrderServed, OrderPaid))
}

func TestCanTransitionSkipsServed(t *testing.T) {
	assert.True(t, CanTransition(OrderReady, OrderPaid))
}

func TestCanTransitionBack(t *testing.T) {
	assert.True(t, CanTransition(OrderPreparing, OrderPending))
	assert.True(t, CanTransition(OrderReady, OrderPreparing))

	// Back is only for the kitchen columns.
	assert.False(t, CanTransition(OrderServed, OrderReady))
	assert.False(t, CanTransition(OrderPaid, OrderServed))
}

func TestCanTransitionRejectsJumps(t *testing.T) {
	assert.False(t, CanTransition(OrderPending, OrderReady))
	assert.False(t, CanTransition(OrderPending, OrderPaid))
	assert.False(t, CanTransition(OrderPreparing, OrderPaid))
	assert.False(t, CanTransition(OrderPending, OrderServed))
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.True(t, CanTransition(OrderPending, OrderCancelled))
	assert.True(t, CanTransition(OrderPreparing, OrderCancelled))
	assert.False(t, CanTransition(OrderReady, OrderCancelled))
	assert.False(t, CanTransition(OrderServed, OrderCancelled))
}

func TestTerminalStatusesAreDeadEnds(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderPaid, OrderCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, next := range []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderServed, OrderPaid, OrderCancelled} {
			assert.False(t, CanTransition(terminal, next), "%s -> %s should be rejected", terminal, next)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus("Pending"))
	assert.False(t, IsValidOrderStatus("Needs Billing"))
	assert.False(t, IsValidOrderStatus("pending"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestIsDineIn(t *testing.T) {
	tableID := uint(3)
	dineIn := Order{Type: string(DineIn), TableID: &tableID}
	takeout := Order{Type: string(Takeout)}

	assert.True(t, dineIn.IsDineIn())
	assert.False(t, takeout.IsDineIn())
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, (&StockItem{Quantity: 5, LowStockThreshold: 5}).IsLowStock())
	assert.True(t, (&StockItem{Quantity: -2, LowStockThreshold: 0}).IsLowStock())
	assert.False(t, (&StockItem{Quantity: 6, LowStockThreshold: 5}).IsLowStock())
}
