package services

import (
	"errors"
	"fmt"
	"time"

	"restro_pos/internal/models"
	"restro_pos/internal/redis"
	"restro_pos/internal/repository"
)

type PlaceOrderItem struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}

type PlaceOrderRequest struct {
	Type    string           `json:"type"` // dine_in or takeout
	TableID *uint            `json:"table_id,omitempty"`
	Items   []PlaceOrderItem `json:"items"`
}

type DashboardStats struct {
	TotalRevenue  float64 `json:"total_revenue"`
	OrdersToday   int     `json:"orders_today"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// OrderEventPublisher decouples the order flow from the event transport.
// Publishing is best effort: a failed publish never fails the mutation.
type OrderEventPublisher interface {
	PublishOrderEvent(event *redis.OrderEvent) error
}

type OrderService interface {
	PlaceOrder(req PlaceOrderRequest) (*models.Order, error)
	UpdateOrderStatus(orderID uint, newStatus string) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetActiveOrders() ([]models.Order, error)
	KitchenBoard() (map[string][]models.Order, error)
	DashboardStats() (*DashboardStats, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	stockRepo repository.StockRepository
	tableRepo repository.TableRepository
	events    OrderEventPublisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	stockRepo repository.StockRepository,
	tableRepo repository.TableRepository,
	events OrderEventPublisher,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
		tableRepo: tableRepo,
		events:    events,
	}
}

func (s *orderService) PlaceOrder(req PlaceOrderRequest) (*models.Order, error) {
	if req.Type != string(models.DineIn) && req.Type != string(models.Takeout) {
		return nil, errors.New("invalid order type")
	}
	if len(req.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}

	// Resolve every line against the current menu. An unknown menu item
	// fails the whole placement so billing and stock never drift.
	var lines []models.OrderItem
	total := 0.0
	stockUpdates := make(map[uint]*models.StockItem)
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity for menu item %d", line.MenuItemID)
		}
		menuItem, err := s.menuRepo.GetByID(line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("unknown menu item %d", line.MenuItemID)
		}

		lineTotal := menuItem.Price * float64(line.Quantity)
		total += lineTotal
		lines = append(lines, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
			TotalPrice: lineTotal,
			Note:       line.Note,
		})

		// Decrement linked stock. Quantities are allowed to go negative:
		// the kitchen keeps serving and the deficit shows up on the stock
		// screen instead of blocking the order.
		if menuItem.StockItemID != nil {
			stockItem, ok := stockUpdates[*menuItem.StockItemID]
			if !ok {
				stockItem, err = s.stockRepo.GetByID(*menuItem.StockItemID)
				if err != nil {
					return nil, fmt.Errorf("failed to load stock item %d: %w", *menuItem.StockItemID, err)
				}
				stockUpdates[stockItem.ID] = stockItem
			}
			stockItem.Quantity -= menuItem.StockRequired * float64(line.Quantity)
		}
	}

	// A dine-in order occupies its table; takeout touches no table.
	var table *models.Table
	if req.Type == string(models.DineIn) {
		if req.TableID == nil {
			return nil, errors.New("table is required for dine-in orders")
		}
		var err error
		table, err = s.tableRepo.GetByID(*req.TableID)
		if err != nil {
			return nil, fmt.Errorf("unknown table %d", *req.TableID)
		}
		table.Status = string(models.TableOccupied)
	}

	number, err := s.nextOrderNumber()
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber: number,
		Type:        req.Type,
		Items:       lines,
		TotalAmount: total,
		Status:      string(models.OrderPending),
	}
	if table != nil {
		order.TableID = &table.ID
	}

	updates := make([]models.StockItem, 0, len(stockUpdates))
	for _, item := range stockUpdates {
		updates = append(updates, *item)
	}

	if err := s.orderRepo.ApplyPlacement(order, updates, table); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publish(&redis.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		NewStatus:   order.Status,
		Timestamp:   time.Now().UTC(),
	})
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("unknown order status %q", newStatus)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}

	oldStatus := order.Status
	if !models.CanTransition(models.OrderStatus(oldStatus), models.OrderStatus(newStatus)) {
		return nil, fmt.Errorf("cannot move order from %s to %s", oldStatus, newStatus)
	}
	order.Status = newStatus

	// Table side effects: serving flags the table for billing, paying or
	// cancelling releases it.
	var table *models.Table
	if order.IsDineIn() {
		table, err = s.tableRepo.GetByID(*order.TableID)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %d: %w", *order.TableID, err)
		}
		switch models.OrderStatus(newStatus) {
		case models.OrderServed:
			table.Status = string(models.TableNeedsBilling)
		case models.OrderPaid, models.OrderCancelled:
			table.Status = string(models.TableAvailable)
			table.CurrentOrderID = nil
		default:
			table = nil
		}
	}

	if err := s.orderRepo.ApplyStatusChange(order, table); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.publish(&redis.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		Timestamp:   time.Now().UTC(),
	})
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetActiveOrders() ([]models.Order, error) {
	return s.orderRepo.GetActive()
}

// KitchenBoard partitions active orders into the three kitchen columns,
// oldest first within each column.
func (s *orderService) KitchenBoard() (map[string][]models.Order, error) {
	board := make(map[string][]models.Order)
	for _, status := range []models.OrderStatus{models.OrderPending, models.OrderPreparing, models.OrderReady} {
		orders, err := s.orderRepo.GetByStatus(string(status))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s orders: %w", status, err)
		}
		board[string(status)] = orders
	}
	return board, nil
}

func (s *orderService) DashboardStats() (*DashboardStats, error) {
	orders, err := s.orderRepo.GetSince(startOfToday())
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	stats := &DashboardStats{OrdersToday: len(orders)}
	for _, order := range orders {
		if order.Status == string(models.OrderPaid) || order.Status == string(models.OrderServed) {
			stats.TotalRevenue += order.TotalAmount
		}
	}
	if stats.OrdersToday > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.OrdersToday)
	}
	return stats, nil
}

// nextOrderNumber builds ORD_YYYYMMDD_NNN from today's order count.
func (s *orderService) nextOrderNumber() (string, error) {
	count, err := s.orderRepo.CountSince(startOfToday())
	if err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("ORD_%s_%03d", time.Now().UTC().Format("20060102"), count+1), nil
}

func (s *orderService) publish(event *redis.OrderEvent) {
	if s.events == nil {
		return
	}
	// Event delivery is advisory; state is already committed.
	_ = s.events.PublishOrderEvent(event)
}

func startOfToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
