package repository

import (
	"restro_pos/internal/models"

	"gorm.io/gorm"
)

type StockRepository interface {
	Create(item *models.StockItem) error
	GetByID(id uint) (*models.StockItem, error)
	GetAll() ([]models.StockItem, error)
	GetLowStock() ([]models.StockItem, error)
	Update(item *models.StockItem) error
	Delete(id uint) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(item *models.StockItem) error {
	return r.db.Create(item).Error
}

func (r *stockRepository) GetByID(id uint) (*models.StockItem, error) {
	var item models.StockItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockRepository) GetAll() ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *stockRepository) GetLowStock() ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.Where("quantity <= low_stock_threshold").Order("name").Find(&items).Error
	return items, err
}

func (r *stockRepository) Update(item *models.StockItem) error {
	return r.db.Save(item).Error
}

func (r *stockRepository) Delete(id uint) error {
	return r.db.Delete(&models.StockItem{}, id).Error
}
