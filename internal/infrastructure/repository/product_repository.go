package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(product).Error
}

func (r *productRepository) UpdateCost(ctx context.Context, id uuid.UUID, purchasePrice, averageCost decimal.Decimal) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"purchase_price": purchasePrice,
			"average_cost":   averageCost,
		}).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ? OR hsn_code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity <= quantity_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "name"
	sortOrder := "ASC"
	switch params.SortBy {
	case "code", "selling_price", "quantity", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("quantity <= quantity_alert").
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}
