package repository

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer data operations.
// Coins and wallet mutations are conditional single-statement updates so
// racing bills cannot overdraw a coin balance.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// AddCoins applies a signed coin delta; returns false when the delta would
	// drive the balance negative (insufficient coins)
	AddCoins(ctx context.Context, id uuid.UUID, delta int64) (bool, error)
	// AddPendingAmount applies a signed delta to the wallet balance
	AddPendingAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

// CompanyRepository defines the interface for vendor company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error)
}
