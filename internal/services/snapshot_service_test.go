package services

import (
	"testing"

	"restro_pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportGathersAllCollections(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	stockRepo := newFakeStockRepo()
	tableRepo := newFakeTableRepo()
	orderRepo := newFakeOrderRepo(stockRepo, tableRepo)

	require.NoError(t, menuRepo.Create(&models.MenuItem{Name: "Classic Burger", Price: 12.99, Category: "Burgers"}))
	require.NoError(t, stockRepo.Create(&models.StockItem{Name: "Patties", Quantity: 100, Unit: "pcs"}))
	require.NoError(t, tableRepo.Create(&models.Table{Name: "T1", Capacity: 4, Status: string(models.TableAvailable)}))
	require.NoError(t, orderRepo.ApplyPlacement(&models.Order{
		OrderNumber: "ORD_20260901_001", Type: string(models.Takeout),
		TotalAmount: 12.99, Status: string(models.OrderPending),
	}, nil, nil))

	service := NewSnapshotService(menuRepo, stockRepo, tableRepo, orderRepo, nil)
	snapshot, err := service.Export()
	require.NoError(t, err)

	assert.Len(t, snapshot.MenuItems, 1)
	assert.Len(t, snapshot.StockItems, 1)
	assert.Len(t, snapshot.Tables, 1)
	assert.Len(t, snapshot.Orders, 1)
	assert.Equal(t, "ORD_20260901_001", snapshot.Orders[0].OrderNumber)
}

func TestImportRestoresExportedState(t *testing.T) {
	menuRepo := newFakeMenuRepo()
	stockRepo := newFakeStockRepo()
	tableRepo := newFakeTableRepo()
	orderRepo := newFakeOrderRepo(stockRepo, tableRepo)

	require.NoError(t, menuRepo.Create(&models.MenuItem{Name: "Classic Burger", Price: 12.99, Category: "Burgers"}))
	require.NoError(t, stockRepo.Create(&models.StockItem{Name: "Patties", Quantity: 100, Unit: "pcs"}))
	require.NoError(t, tableRepo.Create(&models.Table{Name: "T1", Capacity: 4, Status: string(models.TableOccupied)}))
	require.NoError(t, orderRepo.ApplyPlacement(&models.Order{
		OrderNumber: "ORD_20260901_001", Type: string(models.Takeout),
		TotalAmount: 12.99, Status: string(models.OrderServed),
	}, nil, nil))

	service := NewSnapshotService(menuRepo, stockRepo, tableRepo, orderRepo, nil)
	exported, err := service.Export()
	require.NoError(t, err)

	// Restore into a fresh store and compare round trip.
	freshStock := newFakeStockRepo()
	freshTables := newFakeTableRepo()
	freshMenu := newFakeMenuRepo()
	freshOrders := newFakeOrderRepo(freshStock, freshTables)
	restored := NewSnapshotService(freshMenu, freshStock, freshTables, freshOrders, nil)
	require.NoError(t, restored.Import(exported))

	got, err := restored.Export()
	require.NoError(t, err)
	assert.Equal(t, exported, got)
}

func TestExportOnEmptyDatabase(t *testing.T) {
	stockRepo := newFakeStockRepo()
	tableRepo := newFakeTableRepo()
	service := NewSnapshotService(newFakeMenuRepo(), stockRepo, tableRepo, newFakeOrderRepo(stockRepo, tableRepo), nil)

	snapshot, err := service.Export()
	require.NoError(t, err)
	assert.Empty(t, snapshot.MenuItems)
	assert.Empty(t, snapshot.Orders)
}
