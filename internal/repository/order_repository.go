package repository

import (
	"time"

	"restro_pos/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// ApplyPlacement writes an order together with its side effects
	// (stock decrements, table occupation) in a single transaction.
	ApplyPlacement(order *models.Order, stockUpdates []models.StockItem, table *models.Table) error
	// ApplyStatusChange writes a status update and, when the order is bound
	// to a table, the table's new state in the same transaction.
	ApplyStatusChange(order *models.Order, table *models.Table) error
	// Save upserts a full order with its lines, used by state import.
	Save(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByNumber(number string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByStatus(status string) ([]models.Order, error)
	GetActive() ([]models.Order, error)
	GetSince(t time.Time) ([]models.Order, error)
	CountSince(t time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ApplyPlacement(order *models.Order, stockUpdates []models.StockItem, table *models.Table) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range stockUpdates {
			if err := tx.Save(&stockUpdates[i]).Error; err != nil {
				return err
			}
		}
		if table != nil {
			// The order ID is only known after the insert.
			table.CurrentOrderID = &order.ID
			if err := tx.Save(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) ApplyStatusChange(order *models.Order, table *models.Table) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", order.Status).Error; err != nil {
			return err
		}
		if table != nil {
			if err := tx.Save(table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) Save(order *models.Order) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(number string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("status = ?", status).Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetActive() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("status NOT IN ?", []string{string(models.OrderPaid), string(models.OrderCancelled)}).
		Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetSince(t time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("created_at >= ?", t).Order("created_at").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}
