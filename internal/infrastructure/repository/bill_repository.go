package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Items").
		Preload("Store").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Items").
		First(&bill, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Bill{}).Scopes(TenantScope(ctx))

	if params.StoreID != nil {
		query = query.Where("store_id = ?", *params.StoreID)
	}

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.CustomerMobile != "" {
		query = query.Where("customer_mobile = ?", params.CustomerMobile)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
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

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "invoice_seq", "grand_total":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&bills).Error

	return bills, total, err
}

// NextInvoiceSeq upserts the per-tenant counter row and returns the advanced
// value in one statement, so two concurrent bills can never share a number
func (r *billRepository) NextInvoiceSeq(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var seq int64
	err := dbFrom(ctx, r.db).WithContext(ctx).Raw(
		`INSERT INTO invoice_sequences (tenant_id, value) VALUES (?, 1)
		 ON CONFLICT (tenant_id) DO UPDATE SET value = invoice_sequences.value + 1
		 RETURNING value`, tenantID).Scan(&seq).Error
	return seq, err
}

type walletTransactionRepository struct {
	db *gorm.DB
}

// NewWalletTransactionRepository creates a new wallet transaction repository
func NewWalletTransactionRepository(db *gorm.DB) domainRepo.WalletTransactionRepository {
	return &walletTransactionRepository{db: db}
}

func (r *walletTransactionRepository) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(txn).Error
}

func (r *walletTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WalletTransaction, error) {
	var txn entity.WalletTransaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Payments").
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *walletTransactionRepository) Update(ctx context.Context, txn *entity.WalletTransaction) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(txn).Error
}

func (r *walletTransactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.WalletTransaction, int64, error) {
	var txns []entity.WalletTransaction
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.WalletTransaction{}).Scopes(TenantScope(ctx))

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Unsettled {
		query = query.Where("outstanding > 0")
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
		Preload("Payments").
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

// ListOutstanding returns unsettled entries oldest-first; settlement walks
// this slice allocating payments front to back
func (r *walletTransactionRepository) ListOutstanding(ctx context.Context, customerID uuid.UUID) ([]entity.WalletTransaction, error) {
	var txns []entity.WalletTransaction
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Where("customer_id = ? AND outstanding > 0", customerID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}
