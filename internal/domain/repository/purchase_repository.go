package repository

import (
	"context"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// PurchaseRepository defines the interface for purchase data operations.
// Purchases are append-only.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	// NextPurchaseSeq atomically advances the tenant's purchase counter
	NextPurchaseSeq(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	CompanyID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// PurchaseReturnRepository defines the interface for purchase return records
type PurchaseReturnRepository interface {
	Create(ctx context.Context, ret *entity.PurchaseReturn) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.PurchaseReturn, int64, error)
}

// SaleReturnRepository defines the interface for sale return records
type SaleReturnRepository interface {
	Create(ctx context.Context, ret *entity.SaleReturn) error
	List(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error)
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ExpenseFilterParams) ([]entity.Expense, int64, error)
}

// ExpenseFilterParams contains filtering parameters for expense queries
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	StoreID    *uuid.UUID
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}
