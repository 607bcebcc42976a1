package main

import (
	"context"
	"log"
	"time"

	"restro_pos/internal/config"
	"restro_pos/internal/database"
	"restro_pos/internal/handlers"
	"restro_pos/internal/migrations"
	"restro_pos/internal/redis"
	"restro_pos/internal/repository"
	"restro_pos/internal/services"
	"restro_pos/pkg/gemini"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations and seed the demo restaurant
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize Gemini client
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, time.Duration(cfg.InsightTimeout)*time.Second)
	if !geminiClient.HasKey() {
		log.Println("GEMINI_API_KEY not set, AI insight features are disabled")
	}

	// Initialize repositories
	menuRepo := repository.NewMenuRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	stockRepo := repository.NewStockRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	orderService := services.NewOrderService(orderRepo, menuRepo, stockRepo, tableRepo, redisClient)
	menuService := services.NewMenuService(menuRepo, categoryRepo, stockRepo)
	stockService := services.NewStockService(stockRepo)
	tableService := services.NewTableService(tableRepo, cfg.PublicBaseURL)
	insightService := services.NewInsightService(
		geminiClient, orderRepo, menuRepo, stockRepo,
		redisClient, time.Duration(cfg.InsightCacheTTL)*time.Second,
	)
	snapshotService := services.NewSnapshotService(menuRepo, stockRepo, tableRepo, orderRepo, redisClient)
	authService := services.NewAuthService(userRepo, redisClient, time.Duration(cfg.SessionTimeout)*time.Second)

	// Keep the redis state mirror fresh in the background
	mirrorCtx, cancelMirror := context.WithCancel(context.Background())
	defer cancelMirror()
	go snapshotService.Run(mirrorCtx, time.Minute)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(
		orderService, menuService, stockService, tableService,
		insightService, snapshotService, authService, redisClient,
	)
	customerHandler := handlers.NewCustomerHandler(orderService, menuService, tableService, insightService)

	// Setup routes
	router := gin.Default()

	// Customer entry point: ?view=customer&table_id=N selects self-order mode
	router.GET("/", customerHandler.Entry)
	customer := router.Group("/customer")
	{
		customer.POST("/orders", customerHandler.PlaceOrder)
		customer.POST("/orders/suggest", customerHandler.SuggestAddOn)
	}

	router.POST("/api/auth/login", apiHandler.Login)

	// Staff API
	api := router.Group("/api", handlers.SessionAuth(authService))
	{
		api.POST("/auth/logout", apiHandler.Logout)

		api.GET("/dashboard", apiHandler.GetDashboard)
		api.GET("/dashboard/insights", apiHandler.GetBusinessInsights)

		api.POST("/orders", apiHandler.PlaceOrder)
		api.GET("/orders", apiHandler.GetOrders)
		api.GET("/orders/:id", apiHandler.GetOrder)
		api.PUT("/orders/:id/status", apiHandler.UpdateOrderStatus)
		api.POST("/orders/suggest", apiHandler.SuggestAddOn)

		api.GET("/kitchen", apiHandler.GetKitchenBoard)
		api.GET("/kitchen/stream", apiHandler.StreamOrderEvents)

		api.GET("/menu", apiHandler.GetMenu)
		api.POST("/menu", apiHandler.CreateMenuItem)
		api.PUT("/menu/:id", apiHandler.UpdateMenuItem)
		api.DELETE("/menu/:id", apiHandler.DeleteMenuItem)
		api.POST("/menu/describe", apiHandler.GenerateDescription)

		api.GET("/categories", apiHandler.GetCategories)
		api.POST("/categories", apiHandler.AddCategory)
		api.DELETE("/categories/:name", apiHandler.DeleteCategory)

		api.GET("/stock", apiHandler.GetStock)
		api.POST("/stock", apiHandler.AddStockItem)
		api.PUT("/stock/:id/quantity", apiHandler.AdjustStockQuantity)
		api.GET("/stock/reorder-suggestions", apiHandler.GetReorderSuggestions)

		api.GET("/tables", apiHandler.GetTables)
		api.POST("/tables", apiHandler.AddTable)
		api.DELETE("/tables/:id", apiHandler.DeleteTable)
		api.GET("/tables/:id/qr", apiHandler.GetTableQR)

		api.GET("/state", apiHandler.GetState)
		api.GET("/state/export", apiHandler.ExportState)
		api.POST("/state/import", apiHandler.ImportState)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
