package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Company").
		Preload("Items.Product").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{}).Scopes(TenantScope(ctx))

	if params.CompanyID != nil {
		query = query.Where("company_id = ?", *params.CompanyID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Company").
		Order("created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) NextPurchaseSeq(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var seq int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Raw(
		`INSERT INTO purchase_sequences (tenant_id, value) VALUES (?, 1)
		 ON CONFLICT (tenant_id) DO UPDATE SET value = purchase_sequences.value + 1
		 RETURNING value`, tenantID).Scan(&seq).Error
	return seq, err
}

type purchaseReturnRepository struct {
	db *gorm.DB
}

// NewPurchaseReturnRepository creates a new purchase return repository
func NewPurchaseReturnRepository(db *gorm.DB) domainRepo.PurchaseReturnRepository {
	return &purchaseReturnRepository{db: db}
}

func (r *purchaseReturnRepository) Create(ctx context.Context, ret *entity.PurchaseReturn) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *purchaseReturnRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.PurchaseReturn, int64, error) {
	var rets []entity.PurchaseReturn
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.PurchaseReturn{}).Scopes(TenantScope(ctx))

	if params.CompanyID != nil {
		query = query.Where("company_id = ?", *params.CompanyID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Company").
		Preload("Items").
		Order("created_at DESC").
		Find(&rets).Error

	return rets, total, err
}

type saleReturnRepository struct {
	db *gorm.DB
}

// NewSaleReturnRepository creates a new sale return repository
func NewSaleReturnRepository(db *gorm.DB) domainRepo.SaleReturnRepository {
	return &saleReturnRepository{db: db}
}

func (r *saleReturnRepository) Create(ctx context.Context, ret *entity.SaleReturn) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *saleReturnRepository) List(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) ([]entity.SaleReturn, int64, error) {
	var rets []entity.SaleReturn
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.SaleReturn{}).Scopes(TenantScope(ctx))

	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Store").
		Preload("Items").
		Order("created_at DESC").
		Find(&rets).Error

	return rets, total, err
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Expense{}).Scopes(TenantScope(ctx))

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Store").
		Order("date DESC").
		Find(&expenses).Error

	return expenses, total, err
}
