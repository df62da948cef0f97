package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/pricing"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog operations. The print price is always
// derived from the selling price; it is never accepted from input.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents create/update product input
type ProductInput struct {
	Name          string
	Code          string
	HSNCode       *string
	GSTPercentage decimal.Decimal
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	QuantityAlert int
}

func (s *ProductService) validate(input *ProductInput) error {
	if input.Name == "" {
		return apperror.NewBadRequestError("Product name is required")
	}
	if input.Code == "" {
		return apperror.NewBadRequestError("Product code is required")
	}
	if !pricing.IsValidGSTRate(input.GSTPercentage) {
		return apperror.NewBadRequestError("GST rate must be one of 0, 5, 12, 18, 28")
	}
	if input.SellingPrice.IsNegative() || input.PurchasePrice.IsNegative() {
		return apperror.NewBadRequestError("Prices cannot be negative")
	}
	return nil
}

// CreateProduct creates a catalog item
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		TenantID:      tenantID,
		Name:          input.Name,
		Code:          input.Code,
		HSNCode:       input.HSNCode,
		GSTPercentage: input.GSTPercentage,
		PurchasePrice: input.PurchasePrice,
		AverageCost:   input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		PrintPrice:    pricing.ComputePrintPrice(input.SellingPrice),
		QuantityAlert: input.QuantityAlert,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates a catalog item, re-deriving the print price
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Product code already exists")
		}
	}

	product.Name = input.Name
	product.Code = input.Code
	product.HSNCode = input.HSNCode
	product.GSTPercentage = input.GSTPercentage
	product.PurchasePrice = input.PurchasePrice
	product.SellingPrice = input.SellingPrice
	product.PrintPrice = pricing.ComputePrintPrice(input.SellingPrice)
	product.QuantityAlert = input.QuantityAlert

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products at or below their alert quantity
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
