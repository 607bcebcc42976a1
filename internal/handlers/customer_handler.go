package handlers

import (
	"fmt"
	"net/http"

	"restro_pos/internal/services"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves the self-order entry point reached from a table's
// QR code. Its routes require no session.
type CustomerHandler struct {
	orderService   services.OrderService
	menuService    services.MenuService
	tableService   services.TableService
	insightService services.InsightService
}

func NewCustomerHandler(
	orderService services.OrderService,
	menuService services.MenuService,
	tableService services.TableService,
	insightService services.InsightService,
) *CustomerHandler {
	return &CustomerHandler{
		orderService:   orderService,
		menuService:    menuService,
		tableService:   tableService,
		insightService: insightService,
	}
}

// Entry handles the root URL. `?view=customer` selects the customer
// self-order mode, optionally scoped to a table; otherwise the staff
// screen index is returned.
func (h *CustomerHandler) Entry(c *gin.Context) {
	if c.Query("view") != "customer" {
		c.JSON(http.StatusOK, gin.H{
			"app":     "RestroAI POS",
			"screens": []string{"Dashboard", "Orders", "Kitchen", "Menu", "Stock", "Tables"},
		})
		return
	}

	greeting := "Order for takeaway."
	var tableID *uint
	if raw := c.Query("table_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table id"})
			return
		}
		table, err := h.tableService.GetTableByID(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		greeting = fmt.Sprintf("Welcome to %s!", table.Name)
		tableID = &table.ID
	}

	menu, err := h.menuService.GetMenuGrouped()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":     "customer",
		"greeting": greeting,
		"table_id": tableID,
		"menu":     menu,
	})
}

// PlaceOrder places a customer's own order: dine-in when the QR carried a
// table, takeout otherwise.
func (h *CustomerHandler) PlaceOrder(c *gin.Context) {
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
	c.JSON(http.StatusCreated, gin.H{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})
}

// SuggestAddOn lets the customer screen ask for a complementary item.
func (h *CustomerHandler) SuggestAddOn(c *gin.Context) {
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
