package repository

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateCost writes only the purchase price and weighted-average cost,
	// leaving the concurrently-mutated quantity column alone
	UpdateCost(ctx context.Context, id uuid.UUID, purchasePrice, averageCost decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAll returns the tenant's whole catalog, for reports and exports
	ListAll(ctx context.Context) ([]entity.Product, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
