package main

import (
	"log"
	"net/http"
	"os"

	"abstract-portal/config"
	"abstract-portal/handlers"
	"abstract-portal/helper"
	"abstract-portal/middleware"
	"abstract-portal/repositories"
	"abstract-portal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()
	defer config.CloseDB(db)

	wordLimits := config.LoadWordLimits()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	abstractRepo := repositories.NewAbstractRepository(db)

	// Initialize services
	notifier := services.NewNotificationService()
	storage, err := services.NewStorageService()
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}
	authService := services.NewAuthService(userRepo)
	abstractService := services.NewAbstractService(abstractRepo, wordLimits, notifier)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	abstractHandler := handlers.NewAbstractHandler(abstractService, storage, httpHelper)
	adminHandler := handlers.NewAdminHandler(abstractService, httpHelper)
	uploadHandler := handlers.NewUploadHandler(storage, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
		v1.POST("/admin/login", authHandler.AdminLogin)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Abstracts (submitter-facing)
			abstracts := protected.Group("/abstracts")
			{
				abstracts.POST("", abstractHandler.Submit)
				abstracts.GET("/user", abstractHandler.GetUserAbstracts)
				abstracts.PUT("/:id", abstractHandler.Update)
				abstracts.DELETE("/:id", abstractHandler.Delete)
				abstracts.GET("/:id/download", abstractHandler.Download)
			}

			// File storage
			protected.POST("/upload", uploadHandler.Upload)
			protected.GET("/files/sign", uploadHandler.SignFile)

			// Admin dashboard
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/abstracts", adminHandler.ListAbstracts)
				admin.GET("/statistics", adminHandler.Statistics)
				admin.PUT("/abstracts/bulk-status", adminHandler.BulkUpdateStatus)
				admin.PUT("/abstracts/:id/status", adminHandler.UpdateStatus)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
