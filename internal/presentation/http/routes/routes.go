package routes

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/config"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/handler"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/middleware"
	"github.com/ajjawam/ajjawam-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Store      *handler.StoreHandler
	Product    *handler.ProductHandler
	Customer   *handler.CustomerHandler
	Company    *handler.CompanyHandler
	Bill       *handler.BillHandler
	Transfer   *handler.TransferHandler
	Assignment *handler.AssignmentHandler
	Purchase   *handler.PurchaseHandler
	Expense    *handler.ExpenseHandler
	Report     *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.BurstSize,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Users (admin)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.Auth.ListUsers)
		users.POST("", h.Auth.CreateUser)
		users.PUT("/:id/active", h.Auth.SetUserActive)
	}

	// Stores
	stores := protected.Group("/stores")
	{
		stores.GET("", h.Store.List)
		stores.POST("", middleware.RequireAdmin(), h.Store.Create)
		stores.GET("/:id", h.Store.Get)
		stores.PUT("/:id", middleware.RequireAdmin(), h.Store.Update)
		stores.DELETE("/:id", middleware.RequireAdmin(), h.Store.Delete)
		stores.GET("/:id/stock", h.Store.ListStock)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", middleware.RequireAdmin(), h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", middleware.RequireAdmin(), h.Product.Update)
		products.DELETE("/:id", middleware.RequireAdmin(), h.Product.Delete)
	}

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/mobile/:mobile", h.Customer.GetByMobile)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireAdmin(), h.Customer.Delete)
		customers.GET("/:id/wallet", h.Bill.GetWallet)
	}

	// Supplier companies (admin)
	companies := protected.Group("/companies")
	companies.Use(middleware.RequireAdmin())
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.DELETE("/:id", h.Company.Delete)
	}

	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Bills and the customer ledger
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		// Bill creation moves stock and money; idempotency keys guard retries
		bills.POST("", idempotency, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
	}
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Bill.ListTransactions)
		transactions.POST("/pay", idempotency, h.Bill.PayPending)
	}

	// Inter-store transfers
	transfers := protected.Group("/transfers")
	{
		transfers.GET("", h.Transfer.List)
		transfers.POST("", h.Transfer.Create)
		transfers.GET("/:id", h.Transfer.Get)
		transfers.POST("/:id/accept", h.Transfer.Accept)
		transfers.POST("/:id/reject", h.Transfer.Reject)
		transfers.POST("/:id/receive", h.Transfer.Receive)
		transfers.POST("/:id/cancel", h.Transfer.Cancel)
	}

	// Warehouse assignments
	assignments := protected.Group("/assignments")
	{
		assignments.GET("", h.Assignment.List)
		assignments.POST("", middleware.RequireAdmin(), h.Assignment.Create)
		assignments.GET("/:id", h.Assignment.Get)
		assignments.POST("/:id/dispatch", middleware.RequireAdmin(), h.Assignment.Dispatch)
		assignments.POST("/:id/deliver", h.Assignment.Deliver)
		assignments.POST("/:id/cancel", middleware.RequireAdmin(), h.Assignment.Cancel)
	}

	// Supplier purchases and returns (admin)
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequireAdmin())
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotency, h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.GET("/returns", h.Purchase.ListReturns)
		purchases.POST("/returns", h.Purchase.CreateReturn)
	}

	// Sale returns are recorded at the store
	saleReturns := protected.Group("/sale-returns")
	{
		saleReturns.GET("", h.Purchase.ListSaleReturns)
		saleReturns.POST("", h.Purchase.CreateSaleReturn)
	}

	// Expenses
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/sales", h.Report.SalesSummary)
		reports.GET("/gst", h.Report.GSTSummary)
		reports.GET("/stock", h.Report.StockReport)
		reports.GET("/expenses", h.Report.ExpenseReport)
	}
}
