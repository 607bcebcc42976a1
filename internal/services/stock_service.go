package services

import (
	"errors"
	"strings"

	"restro_pos/internal/models"
	"restro_pos/internal/repository"
)

type StockService interface {
	AddStockItem(item *models.StockItem) error
	GetStock() ([]models.StockItem, error)
	GetLowStock() ([]models.StockItem, error)
	GetStockItemByID(id uint) (*models.StockItem, error)
	// AdjustQuantity applies a manual correction. Negative results are kept
	// as-is; the stock screen surfaces the deficit.
	AdjustQuantity(id uint, delta float64) (*models.StockItem, error)
}

type stockService struct {
	stockRepo repository.StockRepository
}

func NewStockService(stockRepo repository.StockRepository) StockService {
	return &stockService{stockRepo: stockRepo}
}

func (s *stockService) AddStockItem(item *models.StockItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("stock item name is required")
	}
	if strings.TrimSpace(item.Unit) == "" {
		return errors.New("unit is required")
	}
	if item.LowStockThreshold < 0 {
		return errors.New("low stock threshold cannot be negative")
	}
	return s.stockRepo.Create(item)
}

func (s *stockService) GetStock() ([]models.StockItem, error) {
	return s.stockRepo.GetAll()
}

func (s *stockService) GetLowStock() ([]models.StockItem, error) {
	return s.stockRepo.GetLowStock()
}

func (s *stockService) GetStockItemByID(id uint) (*models.StockItem, error) {
	return s.stockRepo.GetByID(id)
}

func (s *stockService) AdjustQuantity(id uint, delta float64) (*models.StockItem, error) {
	item, err := s.stockRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("stock item not found")
	}
	item.Quantity += delta
	if err := s.stockRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}
