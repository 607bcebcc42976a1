package main

import (
	"fmt"
	"log"

	"restro_pos/internal/config"
	"restro_pos/internal/database"
	"restro_pos/internal/migrations"
	"restro_pos/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Start from a clean slate
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.StockItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Recreate schema and seed the demo restaurant
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Database initialized successfully!")
	fmt.Println("Default login: admin / admin123")
}
