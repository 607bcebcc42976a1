package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"restro_pos/internal/redis"
	"restro_pos/internal/repository"
	"restro_pos/pkg/gemini"
)

// Fallback texts returned when the AI collaborator is unavailable. Screens
// render these as-is; an insight failure is never a hard error.
const (
	msgInsightsDisabled  = "AI features disabled. Please set your API key in the deployment environment."
	msgInsightsFailed    = "Could not generate AI insights. Please check the API key and network connection."
	msgNoOrderData       = "No order data available yet to generate insights."
	msgAIDisabled        = "AI features disabled."
	msgDescriptionFailed = "Failed to generate description."
	msgReorderFailed     = "Failed to generate reorder suggestions."
	msgSuggestionFailed  = "Could not generate suggestion."
)

type InsightService interface {
	BusinessInsights(ctx context.Context) string
	MenuDescription(ctx context.Context, itemName, category string) string
	ReorderSuggestions(ctx context.Context) string
	OrderSuggestion(ctx context.Context, itemNames []string) string
}

type insightService struct {
	client    *gemini.Client
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
	stockRepo repository.StockRepository
	cache     *redis.Client
	cacheTTL  time.Duration
}

func NewInsightService(
	client *gemini.Client,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	stockRepo repository.StockRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) InsightService {
	return &insightService{
		client:    client,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

type orderProjection struct {
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	Items     int       `json:"items"`
}

type menuProjection struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (s *insightService) BusinessInsights(ctx context.Context) string {
	if !s.client.HasKey() {
		return msgInsightsDisabled
	}

	cacheKey := "business:" + time.Now().UTC().Format("2006-01-02")
	if s.cache != nil {
		if cached, err := s.cache.GetInsight(cacheKey); err == nil {
			return cached
		}
	}

	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return msgInsightsFailed
	}
	if len(orders) == 0 {
		return msgNoOrderData
	}
	menuItems, err := s.menuRepo.GetAll()
	if err != nil {
		return msgInsightsFailed
	}

	orderData := make([]orderProjection, 0, len(orders))
	for _, order := range orders {
		orderData = append(orderData, orderProjection{
			Status:    order.Status,
			Total:     order.TotalAmount,
			CreatedAt: order.CreatedAt,
			Items:     len(order.Items),
		})
	}
	menuData := make([]menuProjection, 0, len(menuItems))
	for _, item := range menuItems {
		menuData = append(menuData, menuProjection{Name: item.Name, Price: item.Price})
	}
	ordersJSON, _ := json.Marshal(orderData)
	menuJSON, _ := json.Marshal(menuData)

	prompt := fmt.Sprintf(`Analyze the following restaurant sales data for today and provide a brief, actionable summary in markdown format.
Focus on:
1. **Top 3 Selling Items**: List them and suggest why they might be popular.
2. **Sales Peak Times**: Identify when most orders were placed.
3. **Potential Improvements**: Suggest one data-driven improvement (e.g., a combo deal, a promotion during slow hours).

**Data:**
- Orders: %s
- Menu: %s`, ordersJSON, menuJSON)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return msgInsightsFailed
	}

	if s.cache != nil {
		_ = s.cache.SetInsight(cacheKey, text, s.cacheTTL)
	}
	return text
}

func (s *insightService) MenuDescription(ctx context.Context, itemName, category string) string {
	if !s.client.HasKey() {
		return ""
	}

	prompt := fmt.Sprintf(`Write a short, delicious, and appetizing menu description for a dish named %q in the %q category. The description should be one sentence and no more than 20 words.`, itemName, category)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return msgDescriptionFailed
	}
	return strings.ReplaceAll(text, `"`, "")
}

func (s *insightService) ReorderSuggestions(ctx context.Context) string {
	if !s.client.HasKey() {
		return msgAIDisabled
	}

	stock, err := s.stockRepo.GetAll()
	if err != nil {
		return msgReorderFailed
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return msgReorderFailed
	}
	stockJSON, _ := json.Marshal(stock)

	prompt := fmt.Sprintf(`Based on the current inventory levels and a summary of recent sales, create a prioritized reorder list in markdown format.
- Identify items that are below their low stock threshold.
- Suggest a reorder quantity based on consumption patterns.
- Only list items that need reordering. If all stock is fine, state that.

**Current Inventory:** %s
**Recent Orders Summary:** %d orders placed recently.`, stockJSON, len(orders))

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return msgReorderFailed
	}
	return text
}

func (s *insightService) OrderSuggestion(ctx context.Context, itemNames []string) string {
	if !s.client.HasKey() {
		return msgAIDisabled
	}

	prompt := fmt.Sprintf(`A customer has the following items in their order: %s.
Suggest one complementary item (an appetizer, drink, or dessert) to enhance their meal.
Provide the suggestion in the format: "You might also enjoy our [Item Name] to go with your meal."
Be brief and direct.`, strings.Join(itemNames, ", "))

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return msgSuggestionFailed
	}
	return text
}
