package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) domainRepo.TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, req *entity.TransferRequest) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(req).Error
}

func (r *transferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	var req entity.TransferRequest
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("RequestingStore").
		Preload("SupplyingStore").
		Preload("Product").
		First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &req, err
}

func (r *transferRepository) List(ctx context.Context, params *domainRepo.TransferFilterParams) ([]entity.TransferRequest, int64, error) {
	var reqs []entity.TransferRequest
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.TransferRequest{}).Scopes(TenantScope(ctx))

	if params.RequestingStoreID != nil {
		query = query.Where("requesting_store_id = ?", *params.RequestingStoreID)
	}

	if params.SupplyingStoreID != nil {
		query = query.Where("supplying_store_id = ?", *params.SupplyingStoreID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("RequestingStore").
		Preload("SupplyingStore").
		Preload("Product").
		Order("requested_at DESC").
		Find(&reqs).Error

	return reqs, total, err
}

// TransitionStatus guards the move with the current status in the WHERE
// clause; of two racing transitions only the first affects a row
func (r *transferRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.TransferStatus, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{"status": to}
	for k, v := range updates {
		values[k] = v
	}

	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.TransferRequest{}).
		Scopes(TenantScope(ctx)).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) domainRepo.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignment entity.Assignment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assignment, err
}

func (r *assignmentRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignment entity.Assignment
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Store").
		Preload("Items.Product").
		First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assignment, err
}

func (r *assignmentRepository) List(ctx context.Context, params *domainRepo.AssignmentFilterParams) ([]entity.Assignment, int64, error) {
	var assignments []entity.Assignment
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Assignment{}).Scopes(TenantScope(ctx))

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Store").
		Preload("Items").
		Order("created_at DESC").
		Find(&assignments).Error

	return assignments, total, err
}

func (r *assignmentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.AssignmentStatus, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{"status": to}
	for k, v := range updates {
		values[k] = v
	}

	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Assignment{}).
		Scopes(TenantScope(ctx)).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
