package database

import (
	"fmt"
	"log"

	"github.com/ajjawam/ajjawam-api/internal/config"
	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy entities
		&entity.Tenant{},
		&entity.InvoiceSequence{},
		&entity.PurchaseSequence{},
		&entity.User{},
		&entity.Store{},

		// Catalog and stock entities
		&entity.Product{},
		&entity.StoreStock{},

		// Party entities
		&entity.Customer{},
		&entity.Company{},

		// Document entities
		&entity.Bill{},
		&entity.BillItem{},
		&entity.WalletTransaction{},
		&entity.TransactionPayment{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.PurchaseReturn{},
		&entity.SaleReturn{},
		&entity.ReturnItem{},
		&entity.TransferRequest{},
		&entity.Assignment{},
		&entity.AssignmentItem{},
		&entity.Expense{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the default tenant and its admin user when
// configured via environment variables. Re-running is a no-op.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	tenantName := viper.GetString("TENANT_NAME")
	tenantSlug := viper.GetString("TENANT_SLUG")
	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if tenantSlug == "" || adminUsername == "" || adminPassword == "" {
		log.Println("Seed variables not set, skipping default data")
		return nil
	}

	var tenant entity.Tenant
	if err := db.Where("slug = ?", tenantSlug).First(&tenant).Error; err != nil {
		if tenantName == "" {
			tenantName = tenantSlug
		}
		tenant = entity.Tenant{
			Name:  tenantName,
			Slug:  tenantSlug,
			State: viper.GetString("TENANT_STATE"),
		}
		if err := db.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create default tenant: %w", err)
		}
		log.Printf("Default tenant created: %s", tenantSlug)
	}

	var existingAdmin entity.User
	if err := db.Where("username = ?", adminUsername).First(&existingAdmin).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminUsername)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	adminUser := entity.User{
		TenantID: tenant.ID,
		Name:     "Administrator",
		Username: adminUsername,
		Password: string(hashedPassword),
		Role:     enum.UserRoleAdmin,
		Active:   true,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Admin user created: %s", adminUsername)

	log.Println("Default data seeding completed")
	return nil
}
