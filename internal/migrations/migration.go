package migrations

import (
	"log"

	"restro_pos/internal/models"
	"restro_pos/internal/repository"
	"restro_pos/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds the demo restaurant when the
// database is empty.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.StockItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func seedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Default data already present, skipping seed")
		return ensureAdminUser(db)
	}

	log.Println("Seeding default data...")

	categoryRepo := repository.NewCategoryRepository(db)
	for _, name := range []string{"Burgers", "Sides", "Drinks", "Desserts"} {
		if err := categoryRepo.Create(&models.Category{Name: name}); err != nil {
			return err
		}
	}

	stockRepo := repository.NewStockRepository(db)
	stockItems := []models.StockItem{
		{Name: "Beef Patty", Quantity: 50, Unit: "patties", LowStockThreshold: 20},
		{Name: "Brioche Buns", Quantity: 60, Unit: "buns", LowStockThreshold: 20},
		{Name: "Cheddar Cheese", Quantity: 100, Unit: "slices", LowStockThreshold: 30},
		{Name: "Potatoes", Quantity: 20, Unit: "kg", LowStockThreshold: 5},
		{Name: "Cola Cans", Quantity: 100, Unit: "cans", LowStockThreshold: 24},
		{Name: "Ice Cream", Quantity: 10, Unit: "liters", LowStockThreshold: 3},
	}
	for i := range stockItems {
		if err := stockRepo.Create(&stockItems[i]); err != nil {
			return err
		}
	}

	menuRepo := repository.NewMenuRepository(db)
	menuItems := []models.MenuItem{
		{
			Name:          "Classic Cheeseburger",
			Price:         12.50,
			Category:      "Burgers",
			Description:   "A juicy beef patty with melted cheddar, lettuce, tomato, and our special sauce on a brioche bun.",
			ImageURL:      "https://picsum.photos/seed/burger1/400/300",
			StockItemID:   &stockItems[0].ID,
			StockRequired: 1,
		},
		{
			Name:          "Bacon Deluxe Burger",
			Price:         14.75,
			Category:      "Burgers",
			Description:   "Our classic burger topped with crispy bacon and an extra slice of cheese.",
			ImageURL:      "https://picsum.photos/seed/burger2/400/300",
			StockItemID:   &stockItems[0].ID,
			StockRequired: 1,
		},
		{
			Name:          "Crispy Fries",
			Price:         4.50,
			Category:      "Sides",
			Description:   "Golden, crispy, and perfectly salted. The perfect companion to any burger.",
			ImageURL:      "https://picsum.photos/seed/fries/400/300",
			StockItemID:   &stockItems[3].ID,
			StockRequired: 0.3,
		},
		{
			Name:        "Onion Rings",
			Price:       5.50,
			Category:    "Sides",
			Description: "Thick-cut onion rings, beer-battered and fried to perfection.",
			ImageURL:    "https://picsum.photos/seed/rings/400/300",
		},
		{
			Name:          "Classic Cola",
			Price:         2.50,
			Category:      "Drinks",
			Description:   "A refreshing can of your favorite cola, served ice-cold.",
			ImageURL:      "https://picsum.photos/seed/cola/400/300",
			StockItemID:   &stockItems[4].ID,
			StockRequired: 1,
		},
		{
			Name:          "Chocolate Milkshake",
			Price:         6.00,
			Category:      "Desserts",
			Description:   "Rich and creamy chocolate milkshake made with real ice cream.",
			ImageURL:      "https://picsum.photos/seed/shake/400/300",
			StockItemID:   &stockItems[5].ID,
			StockRequired: 0.2,
		},
	}
	for i := range menuItems {
		if err := menuRepo.Create(&menuItems[i]); err != nil {
			return err
		}
	}

	tableRepo := repository.NewTableRepository(db)
	tables := []models.Table{
		{Name: "Table 1", Capacity: 4, Status: string(models.TableAvailable)},
		{Name: "Table 2", Capacity: 4, Status: string(models.TableAvailable)},
		{Name: "Table 3", Capacity: 2, Status: string(models.TableAvailable)},
		{Name: "Table 4", Capacity: 6, Status: string(models.TableAvailable)},
		{Name: "Patio 1", Capacity: 4, Status: string(models.TableAvailable)},
	}
	for i := range tables {
		if err := tableRepo.Create(&tables[i]); err != nil {
			return err
		}
	}

	return ensureAdminUser(db)
}

func ensureAdminUser(db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.GetByUsername("admin"); err == nil {
		return nil
	}

	log.Println("Creating default admin user...")
	// Session wiring is not needed just to hash and store the password.
	authService := services.NewAuthService(userRepo, nil, 0)
	admin := &models.User{
		Username: "admin",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := authService.CreateUser(admin, "admin123"); err != nil {
		return err
	}
	log.Println("Default admin user created (username: admin, password: admin123)")
	return nil
}
