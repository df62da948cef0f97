package repository

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransferRepository defines the interface for transfer request operations
type TransferRepository interface {
	Create(ctx context.Context, req *entity.TransferRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error)
	List(ctx context.Context, params *TransferFilterParams) ([]entity.TransferRequest, int64, error)
	// TransitionStatus conditionally moves a request from one status to
	// another with extra column updates, in a single UPDATE ... WHERE
	// status = from. Returns false when the request was not in the expected
	// status (lost race or invalid transition).
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.TransferStatus, updates map[string]interface{}) (bool, error)
}

// TransferFilterParams contains filtering parameters for transfer queries
type TransferFilterParams struct {
	Pagination        *pagination.PaginationParams
	RequestingStoreID *uuid.UUID
	SupplyingStoreID  *uuid.UUID
	Status            *enum.TransferStatus
}

// AssignmentRepository defines the interface for warehouse assignment operations
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	List(ctx context.Context, params *AssignmentFilterParams) ([]entity.Assignment, int64, error)
	// TransitionStatus is the same conditional-update race guard as for
	// transfer requests
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.AssignmentStatus, updates map[string]interface{}) (bool, error)
}

// AssignmentFilterParams contains filtering parameters for assignment queries
type AssignmentFilterParams struct {
	Pagination *pagination.PaginationParams
	StoreID    *uuid.UUID
	Status     *enum.AssignmentStatus
}
