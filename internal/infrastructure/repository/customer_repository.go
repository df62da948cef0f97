package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&customer, "mobile = ?", mobile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Customer{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR mobile ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

// AddCoins applies a signed delta with the non-negative guard in the WHERE
// clause, so a concurrent redemption cannot overdraw the balance
func (r *customerRepository) AddCoins(ctx context.Context, id uuid.UUID, delta int64) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ? AND coins + ? >= 0", id, delta).
		Update("coins", gorm.Expr("coins + ?", delta))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *customerRepository) AddPendingAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("pending_amount", gorm.Expr("pending_amount + ?", delta)).Error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Company{}, "id = ?", id).Error
}

func (r *companyRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Company{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&companies).Error

	return companies, total, err
}
