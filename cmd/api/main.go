package main

import (
	"fmt"
	"net/http"
	"os"

	"moneta/internal/config"
	"moneta/internal/database"
	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/services"
	"moneta/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "moneta/internal/docs" // Import swagger docs
)

// @title           Moneta API
// @version         1.0
// @description     Moneta manages users and their financial transactions, with a cookie-token admin subsystem.

// @host      localhost:8080
// @BasePath  /

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager and run migrations
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, userService)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	adminHandler := handlers.NewAdminHandler(adminService, appConfig.CookieSecure)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.LoadHTMLGlob(appConfig.TemplatesGlob)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Admin routes: registration and the login surfaces are unguarded, the
	// panel and logout sit behind the cookie-token guard.
	admin := router.Group("/admin")
	admin.GET("", adminHandler.ShowHome)
	admin.POST("/admin-register", adminHandler.Register)
	admin.POST("/admin-login", adminHandler.Login)

	guarded := admin.Group("/")
	guarded.Use(middleware.AdminAuth(adminService))
	guarded.POST("/logout", adminHandler.Logout)
	guarded.GET("/admin_panel", adminHandler.Panel)

	// User routes
	router.POST("/", userHandler.CreateUser)
	router.GET("/", userHandler.ListUsers)
	router.GET("/:user_id", userHandler.GetUser)
	router.PUT("/:user_id/update", userHandler.UpdateUser)
	router.DELETE("/:user_id/delete", userHandler.DeleteUser)

	// Transaction routes, nested under the owning user
	router.POST("/:user_id/transactions/create", transactionHandler.CreateTransaction)
	router.GET("/:user_id/transactions", transactionHandler.ListTransactions)
	router.GET("/:user_id/transactions/:transaction_id", transactionHandler.GetTransaction)
	router.PATCH("/:user_id/transactions/:transaction_id/partial_update", transactionHandler.PartialUpdateTransaction)
	router.DELETE("/:user_id/transactions/:transaction_id/delete", transactionHandler.DeleteTransaction)

	log.Infof("Starting Moneta server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
