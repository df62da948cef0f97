package repository

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// StoreRepository defines the interface for store data operations
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	GetByCode(ctx context.Context, code string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Store, int64, error)
}

// StockRepository mutates per-store and warehouse stock. All mutations are
// single conditional UPDATE statements: a decrement that would go negative
// affects zero rows and reports insufficient stock instead of losing writes.
type StockRepository interface {
	// GetStoreStock returns the stock row for a store+product pair, nil when absent
	GetStoreStock(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreStock, error)
	// ListByStore returns a store's stock with pagination
	ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) ([]entity.StoreStock, int64, error)
	// AddStoreStock increments (or upserts) a store's quantity of a product
	AddStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) error
	// DecrementStoreStock atomically decrements if sufficient quantity exists;
	// returns false when stock was insufficient
	DecrementStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) (bool, error)
	// AddWarehouseStock increments the warehouse quantity on the product row
	AddWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) error
	// DecrementWarehouseStock atomically decrements warehouse quantity;
	// returns false when stock was insufficient
	DecrementWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error)
}
