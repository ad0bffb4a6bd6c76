package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/controllers"
	"github.com/mara-ellison/maras-boutique-api/middleware"
	"github.com/mara-ellison/maras-boutique-api/models"
	"github.com/mara-ellison/maras-boutique-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Mara's Boutique API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.Order{}, &models.Product{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	if _, err := services.InitAssetStore(cfg); err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}
	log.Printf("Asset store backend: %s", cfg.AssetStore)
	services.InitSessionService()

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with the full route table.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	// Health check endpoint
	router.GET("/health", healthCheck)

	// Public storefront routes
	router.POST("/checkout", controllers.Checkout)
	router.GET("/products", controllers.ListProducts)
	router.POST("/login", controllers.Login)
	router.POST("/logout", controllers.Logout)

	// Locally stored images are served from this process; the S3
	// backend hands out absolute URLs instead
	if cfg.AssetStore == config.AssetStoreLocal {
		router.GET("/uploads/:filename", controllers.GetUploadedImage)
	}

	// Admin routes, all session-gated
	admin := router.Group("/admin", middleware.RequireAuth())
	{
		admin.GET("/orders", controllers.ListOrders)
		admin.PATCH("/orders/:id", controllers.UpdateOrderStatus)
		admin.GET("/products", controllers.ListProducts)
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mara's Boutique API is running",
	})
}
