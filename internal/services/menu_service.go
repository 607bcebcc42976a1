package services

import (
	"errors"
	"fmt"
	"strings"

	"restro_pos/internal/models"
	"restro_pos/internal/repository"
)

type MenuService interface {
	CreateMenuItem(item *models.MenuItem) error
	UpdateMenuItem(item *models.MenuItem) error
	DeleteMenuItem(id uint) error
	GetMenuItemByID(id uint) (*models.MenuItem, error)
	GetMenu() ([]models.MenuItem, error)
	GetMenuGrouped() (map[string][]models.MenuItem, error)

	GetCategories() ([]string, error)
	AddCategory(name string) error
	DeleteCategory(name string) error
}

type menuService struct {
	menuRepo     repository.MenuRepository
	categoryRepo repository.CategoryRepository
	stockRepo    repository.StockRepository
}

func NewMenuService(
	menuRepo repository.MenuRepository,
	categoryRepo repository.CategoryRepository,
	stockRepo repository.StockRepository,
) MenuService {
	return &menuService{menuRepo: menuRepo, categoryRepo: categoryRepo, stockRepo: stockRepo}
}

func (s *menuService) CreateMenuItem(item *models.MenuItem) error {
	if err := s.validateMenuItem(item); err != nil {
		return err
	}
	return s.menuRepo.Create(item)
}

func (s *menuService) UpdateMenuItem(item *models.MenuItem) error {
	if _, err := s.menuRepo.GetByID(item.ID); err != nil {
		return errors.New("menu item not found")
	}
	if err := s.validateMenuItem(item); err != nil {
		return err
	}
	return s.menuRepo.Update(item)
}

// DeleteMenuItem removes an item without checking past orders: order lines
// carry name and price snapshots, so history stays intact.
func (s *menuService) DeleteMenuItem(id uint) error {
	return s.menuRepo.Delete(id)
}

func (s *menuService) GetMenuItemByID(id uint) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(id)
}

func (s *menuService) GetMenu() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

func (s *menuService) GetMenuGrouped() (map[string][]models.MenuItem, error) {
	items, err := s.menuRepo.GetAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.MenuItem)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped, nil
}

func (s *menuService) GetCategories() ([]string, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names, nil
}

func (s *menuService) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name is required")
	}
	// Duplicate check is a case-sensitive exact match.
	if _, err := s.categoryRepo.GetByName(name); err == nil {
		return fmt.Errorf("category %q already exists", name)
	}
	return s.categoryRepo.Create(&models.Category{Name: name})
}

func (s *menuService) DeleteCategory(name string) error {
	if _, err := s.categoryRepo.GetByName(name); err != nil {
		return errors.New("category not found")
	}
	count, err := s.menuRepo.CountByCategory(name)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %q is in use by %d menu item(s)", name, count)
	}
	return s.categoryRepo.Delete(name)
}

func (s *menuService) validateMenuItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("item name is required")
	}
	if item.Price <= 0 {
		return errors.New("price must be greater than zero")
	}
	if _, err := s.categoryRepo.GetByName(item.Category); err != nil {
		return fmt.Errorf("unknown category %q", item.Category)
	}
	if item.StockItemID != nil {
		if _, err := s.stockRepo.GetByID(*item.StockItemID); err != nil {
			return fmt.Errorf("unknown stock item %d", *item.StockItemID)
		}
	}
	if item.StockRequired < 0 {
		return errors.New("stock required cannot be negative")
	}
	return nil
}
