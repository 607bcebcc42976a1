package services

import (
	"testing"

	"restro_pos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTable(t *testing.T) {
	service := NewTableService(newFakeTableRepo(), "http://localhost:8080")

	table, err := service.AddTable("Window 2", 4)
	require.NoError(t, err)
	assert.NotZero(t, table.ID)
	assert.Equal(t, string(models.TableAvailable), table.Status)
	assert.Nil(t, table.CurrentOrderID)
}

func TestAddTableValidation(t *testing.T) {
	service := NewTableService(newFakeTableRepo(), "http://localhost:8080")

	_, err := service.AddTable("  ", 4)
	assert.EqualError(t, err, "table name is required")

	_, err = service.AddTable("T1", 0)
	assert.EqualError(t, err, "capacity must be at least 1")
}

func TestDeleteTableOnlyWhenAvailable(t *testing.T) {
	tableRepo := newFakeTableRepo()
	service := NewTableService(tableRepo, "http://localhost:8080")

	require.NoError(t, tableRepo.Create(&models.Table{Name: "T1", Capacity: 4, Status: string(models.TableOccupied)}))
	require.NoError(t, tableRepo.Create(&models.Table{Name: "T2", Capacity: 2, Status: string(models.TableAvailable)}))

	err := service.DeleteTable(1)
	assert.EqualError(t, err, `cannot delete table "T1" while it is Occupied`)

	require.NoError(t, service.DeleteTable(2))
	assert.EqualError(t, service.DeleteTable(2), "table not found")
}

func TestCustomerLinkAndQRCodeURL(t *testing.T) {
	// Trailing slash on the base URL must not double up.
	service := NewTableService(newFakeTableRepo(), "https://pos.example.com/")
	table := &models.Table{ID: 3}

	link := service.CustomerLink(table)
	assert.Equal(t, "https://pos.example.com/?view=customer&table_id=3", link)

	qr := service.QRCodeURL(table)
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=250x250&data=https%3A%2F%2Fpos.example.com%2F%3Fview%3Dcustomer%26table_id%3D3",
		qr)
}
