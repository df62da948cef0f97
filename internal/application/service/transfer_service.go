package service

import (
	"context"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransferService drives the inter-store transfer lifecycle:
// Pending -> Accepted -> Received, with Rejected and Canceled exits. Every
// transition pairs a conditional status UPDATE with its stock effect in one
// transaction, so a lost race rolls back both.
type TransferService struct {
	transferRepo repository.TransferRepository
	storeRepo    repository.StoreRepository
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	txManager    repository.TxManager
}

// NewTransferService creates a new transfer service
func NewTransferService(
	transferRepo repository.TransferRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	txManager repository.TxManager,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		txManager:    txManager,
	}
}

// CreateTransferInput represents the create transfer request input
type CreateTransferInput struct {
	RequestingStoreID uuid.UUID
	SupplyingStoreID  uuid.UUID
	ProductID         uuid.UUID
	RequestedQuantity int
}

// CreateRequest opens a Pending transfer request. No stock moves yet.
func (s *TransferService) CreateRequest(ctx context.Context, input *CreateTransferInput) (*entity.TransferRequest, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.RequestedQuantity <= 0 {
		return nil, apperror.NewBadRequestError("Requested quantity must be positive")
	}
	if input.RequestingStoreID == input.SupplyingStoreID {
		return nil, apperror.NewBadRequestError("A store cannot request stock from itself")
	}

	for _, storeID := range []uuid.UUID{input.RequestingStoreID, input.SupplyingStoreID} {
		store, err := s.storeRepo.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperror.NewNotFoundError("Store")
		}
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	req := &entity.TransferRequest{
		TenantID:          tenantID,
		RequestingStoreID: input.RequestingStoreID,
		SupplyingStoreID:  input.SupplyingStoreID,
		ProductID:         input.ProductID,
		RequestedQuantity: input.RequestedQuantity,
		Status:            enum.TransferStatusPending,
		RequestedAt:       time.Now(),
	}
	if err := s.transferRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return s.transferRepo.GetByID(ctx, req.ID)
}

// getForTransition loads the request and checks the caller acts for the
// expected side of the transfer. Admin users act for any store.
func (s *TransferService) getForTransition(ctx context.Context, id uuid.UUID, actingStore func(*entity.TransferRequest) uuid.UUID) (*entity.TransferRequest, error) {
	req, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperror.NewNotFoundError("Transfer request")
	}

	if storeID, scoped := infraRepo.GetStoreID(ctx); scoped && storeID != actingStore(req) {
		return nil, apperror.ErrForbidden
	}
	return req, nil
}

func supplyingSide(req *entity.TransferRequest) uuid.UUID  { return req.SupplyingStoreID }
func requestingSide(req *entity.TransferRequest) uuid.UUID { return req.RequestingStoreID }

// Accept moves Pending -> Accepted, fixing the accepted quantity and
// debiting the supplying store's stock. Single-shot: a second accept loses
// the conditional update and fails.
func (s *TransferService) Accept(ctx context.Context, id uuid.UUID, acceptedQuantity int) (*entity.TransferRequest, error) {
	req, err := s.getForTransition(ctx, id, supplyingSide)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(enum.TransferStatusAccepted) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot accept a transfer in status " + req.Status.String())
	}
	if acceptedQuantity <= 0 || acceptedQuantity > req.RequestedQuantity {
		return nil, apperror.NewBadRequestError("Accepted quantity must be between 1 and the requested quantity")
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		ok, err := s.stockRepo.DecrementStoreStock(ctx, req.SupplyingStoreID, req.ProductID, acceptedQuantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewInsufficientStockError("Supplying store lacks the accepted quantity")
		}

		now := time.Now()
		moved, err := s.transferRepo.TransitionStatus(ctx, id,
			enum.TransferStatusPending, enum.TransferStatusAccepted,
			map[string]interface{}{
				"accepted_quantity": acceptedQuantity,
				"accepted_at":       now,
			})
		if err != nil {
			return err
		}
		if !moved {
			// Lost the race; the rollback restores the stock decrement
			return apperror.NewInvalidStateTransitionError("Transfer request is no longer pending")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.transferRepo.GetByID(ctx, id)
}

// Reject moves Pending -> Rejected. No stock mutation.
func (s *TransferService) Reject(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	req, err := s.getForTransition(ctx, id, supplyingSide)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(enum.TransferStatusRejected) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot reject a transfer in status " + req.Status.String())
	}

	moved, err := s.transferRepo.TransitionStatus(ctx, id,
		enum.TransferStatusPending, enum.TransferStatusRejected,
		map[string]interface{}{"rejected_at": time.Now()})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewInvalidStateTransitionError("Transfer request is no longer pending")
	}
	return s.transferRepo.GetByID(ctx, id)
}

// Receive moves Accepted -> Received, crediting the requesting store with the
// accepted quantity. Terminal.
func (s *TransferService) Receive(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	req, err := s.getForTransition(ctx, id, requestingSide)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(enum.TransferStatusReceived) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot receive a transfer in status " + req.Status.String())
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		moved, err := s.transferRepo.TransitionStatus(ctx, id,
			enum.TransferStatusAccepted, enum.TransferStatusReceived,
			map[string]interface{}{"received_at": time.Now()})
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewInvalidStateTransitionError("Transfer request is not accepted")
		}
		return s.stockRepo.AddStoreStock(ctx, req.RequestingStoreID, req.ProductID, req.AcceptedQuantity)
	})
	if err != nil {
		return nil, err
	}
	return s.transferRepo.GetByID(ctx, id)
}

// Cancel moves Accepted -> Canceled, restoring the supplying store's stock.
// Net-zero with the earlier Accept. Terminal.
func (s *TransferService) Cancel(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	req, err := s.getForTransition(ctx, id, supplyingSide)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(enum.TransferStatusCanceled) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot cancel a transfer in status " + req.Status.String())
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		moved, err := s.transferRepo.TransitionStatus(ctx, id,
			enum.TransferStatusAccepted, enum.TransferStatusCanceled,
			map[string]interface{}{"canceled_at": time.Now()})
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewInvalidStateTransitionError("Transfer request is not accepted")
		}
		return s.stockRepo.AddStoreStock(ctx, req.SupplyingStoreID, req.ProductID, req.AcceptedQuantity)
	})
	if err != nil {
		return nil, err
	}
	return s.transferRepo.GetByID(ctx, id)
}

// GetRequest retrieves a transfer request
func (s *TransferService) GetRequest(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	req, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperror.NewNotFoundError("Transfer request")
	}
	return req, nil
}

// ListRequests lists transfer requests with filtering
func (s *TransferService) ListRequests(ctx context.Context, params *repository.TransferFilterParams) (*pagination.PaginatedResult[entity.TransferRequest], error) {
	reqs, total, err := s.transferRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reqs, pag), nil
}
