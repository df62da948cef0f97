package repository

import (
	"context"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines the interface for bill data operations. Bills are
// immutable once created: there is no Update.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// NextInvoiceSeq atomically advances and returns the tenant's invoice
	// counter; must be called inside the bill creation transaction
	NextInvoiceSeq(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	StoreID        *uuid.UUID
	CustomerID     *uuid.UUID
	CustomerMobile string
	PaymentStatus  *enum.PaymentStatus
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// WalletTransactionRepository defines the interface for ledger entries
type WalletTransactionRepository interface {
	Create(ctx context.Context, txn *entity.WalletTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WalletTransaction, error)
	Update(ctx context.Context, txn *entity.WalletTransaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.WalletTransaction, int64, error)
	// ListOutstanding returns a customer's unsettled entries oldest-first,
	// the order payments are allocated in
	ListOutstanding(ctx context.Context, customerID uuid.UUID) ([]entity.WalletTransaction, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Unsettled  bool
	StartDate  *time.Time
	EndDate    *time.Time
}
