package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"restro_pos/internal/models"
	"restro_pos/internal/redis"
	"restro_pos/internal/repository"
)

// SnapshotService exposes the persisted-state layout: the four entity
// collections as one exportable document, mirrored into redis with one key
// per collection. Postgres is the single system of record; the mirror is a
// derived, last-write-wins copy.
type SnapshotService interface {
	Export() (*models.Snapshot, error)
	// Import writes a previously exported document back over the current
	// state and refreshes the mirror.
	Import(snapshot *models.Snapshot) error
	// Cached serves the redis mirror when it is populated and falls back
	// to the database otherwise.
	Cached() (*models.Snapshot, error)
	Mirror() error
	// Run keeps the redis mirror fresh: it refreshes on every order event
	// and on a timer to catch menu, stock and table edits.
	Run(ctx context.Context, interval time.Duration)
}

type snapshotService struct {
	menuRepo  repository.MenuRepository
	stockRepo repository.StockRepository
	tableRepo repository.TableRepository
	orderRepo repository.OrderRepository
	cache     *redis.Client
}

func NewSnapshotService(
	menuRepo repository.MenuRepository,
	stockRepo repository.StockRepository,
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
	cache *redis.Client,
) SnapshotService {
	return &snapshotService{
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
		tableRepo: tableRepo,
		orderRepo: orderRepo,
		cache:     cache,
	}
}

func (s *snapshotService) Export() (*models.Snapshot, error) {
	menuItems, err := s.menuRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	stockItems, err := s.stockRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock items: %w", err)
	}
	tables, err := s.tableRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return &models.Snapshot{
		MenuItems:  menuItems,
		StockItems: stockItems,
		Tables:     tables,
		Orders:     orders,
	}, nil
}

func (s *snapshotService) Import(snapshot *models.Snapshot) error {
	for i := range snapshot.MenuItems {
		if err := s.menuRepo.Update(&snapshot.MenuItems[i]); err != nil {
			return fmt.Errorf("failed to import menu item %q: %w", snapshot.MenuItems[i].Name, err)
		}
	}
	for i := range snapshot.StockItems {
		if err := s.stockRepo.Update(&snapshot.StockItems[i]); err != nil {
			return fmt.Errorf("failed to import stock item %q: %w", snapshot.StockItems[i].Name, err)
		}
	}
	for i := range snapshot.Tables {
		if err := s.tableRepo.Update(&snapshot.Tables[i]); err != nil {
			return fmt.Errorf("failed to import table %q: %w", snapshot.Tables[i].Name, err)
		}
	}
	for i := range snapshot.Orders {
		if err := s.orderRepo.Save(&snapshot.Orders[i]); err != nil {
			return fmt.Errorf("failed to import order %s: %w", snapshot.Orders[i].OrderNumber, err)
		}
	}
	return s.Mirror()
}

func (s *snapshotService) Cached() (*models.Snapshot, error) {
	if s.cache != nil {
		snapshot, err := s.cache.LoadSnapshot()
		if err == nil && !snapshotEmpty(snapshot) {
			return snapshot, nil
		}
	}
	return s.Export()
}

func (s *snapshotService) Mirror() error {
	if s.cache == nil {
		return nil
	}
	snapshot, err := s.Export()
	if err != nil {
		return err
	}
	return s.cache.SaveSnapshot(snapshot)
}

func snapshotEmpty(snapshot *models.Snapshot) bool {
	return snapshot.MenuItems == nil && snapshot.StockItems == nil &&
		snapshot.Tables == nil && snapshot.Orders == nil
}

func (s *snapshotService) Run(ctx context.Context, interval time.Duration) {
	events, err := s.cache.SubscribeOrderEvents(ctx)
	if err != nil {
		log.Printf("Warning: snapshot mirror could not subscribe to order events: %v", err)
		events = nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Mirror(); err != nil {
				log.Printf("Warning: failed to refresh state mirror: %v", err)
			}
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := s.Mirror(); err != nil {
				log.Printf("Warning: failed to refresh state mirror: %v", err)
			}
		}
	}
}
