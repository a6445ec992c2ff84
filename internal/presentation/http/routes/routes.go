package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salescope/salescope-api/internal/config"
	"github.com/salescope/salescope-api/internal/presentation/http/handler"
	"github.com/salescope/salescope-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Dashboard
		v1.GET("/dashboard", h.Dashboard.GetStats)

		registerCustomerRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerSaleRoutes(v1, h)
	}

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.POST("/import", h.Sale.Import)
		sales.GET("/export/csv", h.Export.ExportCSV)
		sales.GET("/export/xlsx", h.Export.ExportXLSX)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}
