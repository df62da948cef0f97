package repository

import (
	"context"
	"errors"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	domainRepo "github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Create(store).Error
}

func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var store entity.Store
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	var store entity.Store
	err := dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).First(&store, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

func (r *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Save(store).Error
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&entity.Store{}, "id = ?", id).Error
}

func (r *storeRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Store, int64, error) {
	var stores []entity.Store
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Store{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&stores).Error

	return stores, total, err
}

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) GetStoreStock(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreStock, error) {
	var stock entity.StoreStock
	err := dbFrom(ctx, r.db).WithContext(ctx).
		First(&stock, "store_id = ? AND product_id = ?", storeID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stock, err
}

func (r *stockRepository) ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) ([]entity.StoreStock, int64, error) {
	var stocks []entity.StoreStock
	var total int64

	query := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StoreStock{}).
		Where("store_id = ?", storeID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Product").
		Order("created_at ASC").
		Find(&stocks).Error

	return stocks, total, err
}

// AddStoreStock upserts on (store_id, product_id) so two concurrent receives
// of the same product both land as increments
func (r *stockRepository) AddStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) error {
	stock := entity.StoreStock{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  amount,
	}
	return dbFrom(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("store_stocks.quantity + EXCLUDED.quantity")}),
		}).
		Create(&stock).Error
}

func (r *stockRepository) DecrementStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.StoreStock{}).
		Where("store_id = ? AND product_id = ? AND quantity >= ?", storeID, productID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *stockRepository) AddWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) error {
	return dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error
}

func (r *stockRepository) DecrementWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error) {
	result := dbFrom(ctx, r.db).WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND quantity >= ?", productID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
