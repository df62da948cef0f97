package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// StoreService handles store master data and the per-store stock view
type StoreService struct {
	storeRepo repository.StoreRepository
	stockRepo repository.StockRepository
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo repository.StoreRepository, stockRepo repository.StockRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, stockRepo: stockRepo}
}

// StoreInput represents create/update store input
type StoreInput struct {
	Name    string
	Code    string
	State   string
	Address *string
	Phone   *string
}

// CreateStore creates a store
func (s *StoreService) CreateStore(ctx context.Context, input *StoreInput) (*entity.Store, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.Name == "" || input.Code == "" || input.State == "" {
		return nil, apperror.NewBadRequestError("Name, code and state are required")
	}

	existing, err := s.storeRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Store code already exists")
	}

	store := &entity.Store{
		TenantID: tenantID,
		Name:     input.Name,
		Code:     input.Code,
		State:    input.State,
		Address:  input.Address,
		Phone:    input.Phone,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// UpdateStore updates a store
func (s *StoreService) UpdateStore(ctx context.Context, id uuid.UUID, input *StoreInput) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	if input.Code != store.Code {
		existing, err := s.storeRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Store code already exists")
		}
	}

	store.Name = input.Name
	store.Code = input.Code
	store.State = input.State
	store.Address = input.Address
	store.Phone = input.Phone

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore retrieves a store by ID
func (s *StoreService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}
	return store, nil
}

// DeleteStore soft-deletes a store
func (s *StoreService) DeleteStore(ctx context.Context, id uuid.UUID) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return apperror.NewNotFoundError("Store")
	}
	return s.storeRepo.Delete(ctx, id)
}

// ListStores lists stores with search
func (s *StoreService) ListStores(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Store], error) {
	stores, total, err := s.storeRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(stores, pag), nil
}

// ListStoreStock returns a store's on-hand quantities
func (s *StoreService) ListStoreStock(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StoreStock], error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	stocks, total, err := s.stockRepo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(stocks, pag), nil
}
