package main

import (
	"log"

	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/config"
	"github.com/ajjawam/ajjawam-api/internal/infrastructure/database"
	"github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/handler"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/routes"
	"github.com/ajjawam/ajjawam-api/pkg/utils"
	"github.com/gin-gonic/gin"
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

	// Seed the tenant and admin account on first boot
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	stockRepo := repository.NewStockRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	billRepo := repository.NewBillRepository(db)
	txnRepo := repository.NewWalletTransactionRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	purchaseReturnRepo := repository.NewPurchaseReturnRepository(db)
	saleReturnRepo := repository.NewSaleReturnRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, storeRepo, jwtManager)
	storeService := service.NewStoreService(storeRepo, stockRepo)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	companyService := service.NewCompanyService(companyRepo)
	ledgerService := service.NewLedgerService(customerRepo, txnRepo, txManager)
	billingService := service.NewBillingService(billRepo, productRepo, customerRepo, storeRepo, stockRepo, ledgerService, txManager)
	transferService := service.NewTransferService(transferRepo, storeRepo, productRepo, stockRepo, txManager)
	assignmentService := service.NewAssignmentService(assignmentRepo, storeRepo, productRepo, stockRepo, txManager)
	purchaseService := service.NewPurchaseService(purchaseRepo, purchaseReturnRepo, saleReturnRepo, companyRepo, productRepo, stockRepo, tenantRepo, txManager)
	expenseService := service.NewExpenseService(expenseRepo, storeRepo)
	reportService := service.NewReportService(reportRepo, productRepo, expenseRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Store:      handler.NewStoreHandler(storeService),
		Product:    handler.NewProductHandler(productService),
		Customer:   handler.NewCustomerHandler(customerService),
		Company:    handler.NewCompanyHandler(companyService),
		Bill:       handler.NewBillHandler(billingService, ledgerService),
		Transfer:   handler.NewTransferHandler(transferService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Report:     handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

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
