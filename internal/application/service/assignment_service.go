package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// AssignmentService drives warehouse-to-store dispatches:
// Process -> Dispatched -> Delivered, with Cancel available until delivery.
// Warehouse stock is debited at creation and restored on cancel; the store is
// credited on delivery.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	storeRepo      repository.StoreRepository
	productRepo    repository.ProductRepository
	stockRepo      repository.StockRepository
	txManager      repository.TxManager
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	txManager repository.TxManager,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		storeRepo:      storeRepo,
		productRepo:    productRepo,
		stockRepo:      stockRepo,
		txManager:      txManager,
	}
}

// AssignmentItemInput is one product+quantity pair of an assignment request
type AssignmentItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateAssignmentInput represents the create assignment input
type CreateAssignmentInput struct {
	StoreID uuid.UUID
	Items   []AssignmentItemInput
}

// Create opens an assignment in Process status, atomically debiting the
// warehouse for every item
func (s *AssignmentService) Create(ctx context.Context, input *CreateAssignmentInput) (*entity.Assignment, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Assignment must have at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var created *entity.Assignment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, item := range input.Items {
			product, exists := productMap[item.ProductID]
			if !exists {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			ok, err := s.stockRepo.DecrementWarehouseStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(
					fmt.Sprintf("Insufficient warehouse stock for %s", product.Name))
			}
		}

		assignment := &entity.Assignment{
			TenantID: tenantID,
			StoreID:  input.StoreID,
			Status:   enum.AssignmentStatusProcess,
			Items:    make([]entity.AssignmentItem, 0, len(input.Items)),
		}
		for _, item := range input.Items {
			assignment.Items = append(assignment.Items, entity.AssignmentItem{
				ProductID:      item.ProductID,
				AssignQuantity: item.Quantity,
			})
		}
		if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
			return err
		}
		created = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetWithItems(ctx, created.ID)
}

// Dispatch moves Process -> Dispatched, stamping the dispatch time
func (s *AssignmentService) Dispatch(ctx context.Context, id uuid.UUID, dispatchAt time.Time) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assignment")
	}
	if !assignment.Status.CanTransitionTo(enum.AssignmentStatusDispatched) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot dispatch an assignment in status " + assignment.Status.String())
	}

	if dispatchAt.IsZero() {
		dispatchAt = time.Now()
	}
	moved, err := s.assignmentRepo.TransitionStatus(ctx, id,
		enum.AssignmentStatusProcess, enum.AssignmentStatusDispatched,
		map[string]interface{}{"dispatch_date_time": dispatchAt})
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperror.NewInvalidStateTransitionError("Assignment is no longer in process")
	}
	return s.assignmentRepo.GetWithItems(ctx, id)
}

// Deliver moves Dispatched -> Delivered, crediting the store's stock for
// every item. Terminal.
func (s *AssignmentService) Deliver(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assignment")
	}
	if !assignment.Status.CanTransitionTo(enum.AssignmentStatusDelivered) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot deliver an assignment in status " + assignment.Status.String())
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		moved, err := s.assignmentRepo.TransitionStatus(ctx, id,
			enum.AssignmentStatusDispatched, enum.AssignmentStatusDelivered,
			map[string]interface{}{"delivered_at": time.Now()})
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewInvalidStateTransitionError("Assignment is not dispatched")
		}
		for _, item := range assignment.Items {
			if err := s.stockRepo.AddStoreStock(ctx, assignment.StoreID, item.ProductID, item.AssignQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetWithItems(ctx, id)
}

// Cancel aborts an assignment from Process or Dispatched, restoring the
// warehouse stock debited at creation. Terminal.
func (s *AssignmentService) Cancel(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assignment")
	}
	if !assignment.Status.CanTransitionTo(enum.AssignmentStatusCanceled) {
		return nil, apperror.NewInvalidStateTransitionError(
			"Cannot cancel an assignment in status " + assignment.Status.String())
	}

	from := assignment.Status
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		moved, err := s.assignmentRepo.TransitionStatus(ctx, id,
			from, enum.AssignmentStatusCanceled,
			map[string]interface{}{"canceled_at": time.Now()})
		if err != nil {
			return err
		}
		if !moved {
			return apperror.NewInvalidStateTransitionError("Assignment status changed concurrently")
		}
		for _, item := range assignment.Items {
			if err := s.stockRepo.AddWarehouseStock(ctx, item.ProductID, item.AssignQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetWithItems(ctx, id)
}

// GetAssignment retrieves an assignment with its items
func (s *AssignmentService) GetAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assignment")
	}
	return assignment, nil
}

// ListAssignments lists assignments with filtering
func (s *AssignmentService) ListAssignments(ctx context.Context, params *repository.AssignmentFilterParams) (*pagination.PaginatedResult[entity.Assignment], error) {
	assignments, total, err := s.assignmentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(assignments, pag), nil
}
