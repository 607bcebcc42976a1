package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"restro_pos/internal/models"
	"restro_pos/internal/repository"
)

const qrAPIURL = "https://api.qrserver.com/v1/create-qr-code/"

type TableService interface {
	AddTable(name string, capacity int) (*models.Table, error)
	DeleteTable(id uint) error
	GetTables() ([]models.Table, error)
	GetTableByID(id uint) (*models.Table, error)
	// CustomerLink is the URL a guest lands on after scanning the table's
	// QR code; QRCodeURL renders that link as an image.
	CustomerLink(table *models.Table) string
	QRCodeURL(table *models.Table) string
}

type tableService struct {
	tableRepo     repository.TableRepository
	publicBaseURL string
}

func NewTableService(tableRepo repository.TableRepository, publicBaseURL string) TableService {
	return &tableService{tableRepo: tableRepo, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *tableService) AddTable(name string, capacity int) (*models.Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("table name is required")
	}
	if capacity < 1 {
		return nil, errors.New("capacity must be at least 1")
	}
	table := &models.Table{
		Name:     name,
		Capacity: capacity,
		Status:   string(models.TableAvailable),
	}
	if err := s.tableRepo.Create(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) DeleteTable(id uint) error {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		return errors.New("table not found")
	}
	if table.Status != string(models.TableAvailable) {
		return fmt.Errorf("cannot delete table %q while it is %s", table.Name, table.Status)
	}
	return s.tableRepo.Delete(id)
}

func (s *tableService) GetTables() ([]models.Table, error) {
	return s.tableRepo.GetAll()
}

func (s *tableService) GetTableByID(id uint) (*models.Table, error) {
	return s.tableRepo.GetByID(id)
}

func (s *tableService) CustomerLink(table *models.Table) string {
	return fmt.Sprintf("%s/?view=customer&table_id=%d", s.publicBaseURL, table.ID)
}

func (s *tableService) QRCodeURL(table *models.Table) string {
	return fmt.Sprintf("%s?size=250x250&data=%s", qrAPIURL, url.QueryEscape(s.CustomerLink(table)))
}
