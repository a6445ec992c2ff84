package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/salescope/salescope-api/internal/application/service"
	"github.com/salescope/salescope-api/internal/config"
	"github.com/salescope/salescope-api/internal/infrastructure/database"
	"github.com/salescope/salescope-api/internal/infrastructure/repository"
	"github.com/salescope/salescope-api/internal/presentation/http/handler"
	"github.com/salescope/salescope-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, customerRepo, productRepo)
	importService := service.NewImportService(uow)
	dashboardService := service.NewDashboardService(analyticsRepo)
	exportService := service.NewExportService(saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(saleService, importService, cfg.Import.UploadMaxSize),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
