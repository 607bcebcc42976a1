package handlers

import (
	"io"
	"net/http"
	"strconv"

	"restro_pos/internal/models"
	"restro_pos/internal/redis"
	"restro_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	orderService    services.OrderService
	menuService     services.MenuService
	stockService    services.StockService
	tableService    services.TableService
	insightService  services.InsightService
	snapshotService services.SnapshotService
	authService     services.AuthService
	redisClient     *redis.Client
}

func NewAPIHandler(
	orderService services.OrderService,
	menuService services.MenuService,
	stockService services.StockService,
	tableService services.TableService,
	insightService services.InsightService,
	snapshotService services.SnapshotService,
	authService services.AuthService,
	redisClient *redis.Client,
) *APIHandler {
	return &APIHandler{
		orderService:    orderService,
		menuService:     menuService,
		stockService:    stockService,
		tableService:    tableService,
		insightService:  insightService,
		snapshotService: snapshotService,
		authService:     authService,
		redisClient:     redisClient,
	}
}

// Auth

func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *APIHandler) Logout(c *gin.Context) {
	token := sessionToken(c)
	if token != "" {
		_ = h.authService.Logout(token)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Dashboard

func (h *APIHandler) GetDashboard(c *gin.Context) {
	stats, err := h.orderService.DashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}
	lowStock, err := h.stockService.GetLowStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load low stock items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"low_stock": lowStock,
	})
}

// GetBusinessInsights is served separately from the stats so a slow or
// absent AI collaborator never delays the dashboard numbers.
func (h *APIHandler) GetBusinessInsights(c *gin.Context) {
	text := h.insightService.BusinessInsights(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"insights": text})
}

// Orders

func (h *APIHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.PlaceOrder(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *APIHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	if status := c.Query("status"); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			if order.Status == status {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, err := h.orderService.GetOrderByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) SuggestAddOn(c *gin.Context) {
	var req struct {
		ItemNames []string `json:"item_names" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	text := h.insightService.OrderSuggestion(c.Request.Context(), req.ItemNames)
	c.JSON(http.StatusOK, gin.H{"suggestion": text})
}

// Kitchen

func (h *APIHandler) GetKitchenBoard(c *gin.Context) {
	board, err := h.orderService.KitchenBoard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load kitchen board"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// StreamOrderEvents pushes order events as server-sent events so the
// kitchen display refreshes without polling.
func (h *APIHandler) StreamOrderEvents(c *gin.Context) {
	events, err := h.redisClient.SubscribeOrderEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe to order events"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("order", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Menu

func (h *APIHandler) GetMenu(c *gin.Context) {
	if c.Query("grouped") == "true" {
		grouped, err := h.menuService.GetMenuGrouped()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"menu": grouped})
		return
	}
	items, err := h.menuService.GetMenu()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": items})
}

func (h *APIHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.menuService.CreateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) UpdateMenuItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item id"})
		return
	}
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	item.ID = id
	if err := h.menuService.UpdateMenuItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) DeleteMenuItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item id"})
		return
	}
	if err := h.menuService.DeleteMenuItem(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *APIHandler) GenerateDescription(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	text := h.insightService.MenuDescription(c.Request.Context(), req.Name, req.Category)
	c.JSON(http.StatusOK, gin.H{"description": text})
}

// Categories

func (h *APIHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *APIHandler) AddCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.menuService.AddCategory(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *APIHandler) DeleteCategory(c *gin.Context) {
	if err := h.menuService.DeleteCategory(c.Param("name")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Stock

func (h *APIHandler) GetStock(c *gin.Context) {
	if c.Query("low") == "true" {
		items, err := h.stockService.GetLowStock()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"stock": items})
		return
	}
	items, err := h.stockService.GetStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": items})
}

func (h *APIHandler) AddStockItem(c *gin.Context) {
	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.stockService.AddStockItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) AdjustStockQuantity(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock item id"})
		return
	}
	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	item, err := h.stockService.AdjustQuantity(id, req.Delta)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) GetReorderSuggestions(c *gin.Context) {
	text := h.insightService.ReorderSuggestions(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"suggestions": text})
}

// Tables

func (h *APIHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (h *APIHandler) AddTable(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	table, err := h.tableService.AddTable(req.Name, req.Capacity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, table)
}

func (h *APIHandler) DeleteTable(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}
	if err := h.tableService.DeleteTable(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GetTableQR returns the customer entry link for the table and the QR image
// URL that encodes it.
func (h *APIHandler) GetTableQR(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
		return
	}
	table, err := h.tableService.GetTableByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customer_url": h.tableService.CustomerLink(table),
		"qr_code_url":  h.tableService.QRCodeURL(table),
	})
}

// State export/import

// GetState reads the mirrored state, falling back to the database when the
// mirror is empty.
func (h *APIHandler) GetState(c *gin.Context) {
	snapshot, err := h.snapshotService.Cached()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load state"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *APIHandler) ExportState(c *gin.Context) {
	snapshot, err := h.snapshotService.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export state"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *APIHandler) ImportState(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.snapshotService.Import(&snapshot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
