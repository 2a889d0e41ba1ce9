package main

import (
	"log"
	"net/http"

	"github.com/talktobrent/product-api/internal/config"
	"github.com/talktobrent/product-api/internal/handler"
	"github.com/talktobrent/product-api/internal/infrastructure"
	"github.com/talktobrent/product-api/internal/middleware"
	"github.com/talktobrent/product-api/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := infrastructure.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Perform all database migrations
	if err := infrastructure.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// Initialize seed data manager and setup sample data
	seedManager := infrastructure.NewSeedDataManager(db)
	if err := seedManager.SeedAll(); err != nil {
		log.Fatalf("Failed to setup seed data: %v", err)
	}

	// Initialize services
	purchaseService := service.NewPurchaseService(db)
	historyService := service.NewHistoryService(db)
	reportService := service.NewReportService(db)

	// Setup Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	handler.RegisterRoutes(r,
		handler.NewHistoryHandler(historyService),
		handler.NewPurchaseHandler(purchaseService),
		handler.NewReportHandler(reportService),
	)

	log.Printf("Starting order management API on port %s (db driver: %s)", cfg.Port, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
