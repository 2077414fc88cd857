package main

import (
	"fmt"
	"net/http"
	"os"

	"dkblytics/internal/bank"
	"dkblytics/internal/config"
	"dkblytics/internal/database"
	"dkblytics/internal/handlers"
	"dkblytics/internal/logger"
	"dkblytics/internal/middleware"
	"dkblytics/internal/services"
	"dkblytics/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
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

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations before accepting traffic
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	transactionService := services.NewTransactionService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)

	bankClient := bank.NewHTTPClient(appConfig.BankAPIURL, appConfig.BankAPIToken, appConfig.BankHTTPTimeout)
	syncService := services.NewSyncService(bankClient, transactionService, accountService, categoryService, services.SyncConfig{
		From:           appConfig.BankSyncFrom,
		SeedCategories: appConfig.CategorySeeding,
	})

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	bankHandler := handlers.NewBankHandler(syncService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Transaction routes
	transactions := router.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/with_category", transactionHandler.GetTransactionsWithCategories)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)

	// Account routes
	accounts := router.Group("/accounts")
	accounts.POST("", accountHandler.UpsertAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:name", accountHandler.GetAccountByName)
	accounts.PATCH("/:name", accountHandler.UpdateBalance)

	// Category rule routes
	categories := router.Group("/categories")
	categories.POST("", categoryHandler.CreateCategoryRule)
	categories.GET("", categoryHandler.GetCategoryRules)
	categories.GET("/:text/:entity", categoryHandler.GetCategoryRule)
	categories.PATCH("/:text/:entity", categoryHandler.UpdateCategoryRule)
	categories.PATCH("/entity/:entity", categoryHandler.UpdateCategoryRulesByEntity)

	// Bank sync
	router.POST("/update_from_bank/", bankHandler.UpdateFromBank)

	log.Infof("Starting dkblytics backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
