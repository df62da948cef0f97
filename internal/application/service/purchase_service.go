package service

import (
	"context"
	"fmt"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/pricing"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/ajjawam/ajjawam-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseService records vendor stock inflow and the compensating return
// documents. Purchases are append-only; each one bumps warehouse stock and
// the product's weighted-average cost.
type PurchaseService struct {
	purchaseRepo       repository.PurchaseRepository
	purchaseReturnRepo repository.PurchaseReturnRepository
	saleReturnRepo     repository.SaleReturnRepository
	companyRepo        repository.CompanyRepository
	productRepo        repository.ProductRepository
	stockRepo          repository.StockRepository
	tenantRepo         repository.TenantRepository
	txManager          repository.TxManager
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	purchaseReturnRepo repository.PurchaseReturnRepository,
	saleReturnRepo repository.SaleReturnRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	tenantRepo repository.TenantRepository,
	txManager repository.TxManager,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:       purchaseRepo,
		purchaseReturnRepo: purchaseReturnRepo,
		saleReturnRepo:     saleReturnRepo,
		companyRepo:        companyRepo,
		productRepo:        productRepo,
		stockRepo:          stockRepo,
		tenantRepo:         tenantRepo,
		txManager:          txManager,
	}
}

// PurchaseLineInput is one raw line of a purchase request
type PurchaseLineInput struct {
	ProductID      uuid.UUID
	Quantity       int
	PriceBeforeTax decimal.Decimal
	DiscountMethod enum.DiscountMethod
	DiscountValue  decimal.Decimal
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	CompanyID uuid.UUID
	Lines     []PurchaseLineInput
}

// CreatePurchase records a vendor purchase, credits the warehouse and
// recomputes each product's weighted-average cost
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Purchase must have at least one item")
	}

	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	productIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		productIDs[i] = line.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	priceLines := make([]pricing.LineInput, 0, len(input.Lines))
	for _, line := range input.Lines {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		priceLines = append(priceLines, pricing.LineInput{
			Quantity:       line.Quantity,
			PriceBeforeTax: line.PriceBeforeTax,
			DiscountMethod: line.DiscountMethod,
			DiscountValue:  line.DiscountValue,
			GSTPercentage:  product.GSTPercentage,
		})
	}

	// Seller is the vendor; the tenant is the buyer for GST labeling
	totals, lineResults, err := pricing.ComputeBillTotals(
		priceLines, "", decimal.Zero, 0, company.State, tenant.State)
	if err != nil {
		return nil, err
	}

	var created *entity.Purchase
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		seq, err := s.purchaseRepo.NextPurchaseSeq(ctx, tenantID)
		if err != nil {
			return err
		}

		purchase := &entity.Purchase{
			TenantID:   tenantID,
			CompanyID:  input.CompanyID,
			PurchaseNo: utils.FormatPurchaseNo(seq),
			GSTType:    pricing.GSTTypeFor(company.State, tenant.State),
			SubTotal:   totals.SubTotal,
			TotalGST:   totals.TotalGST,
			GrandTotal: totals.GrandTotal,
			Items:      make([]entity.PurchaseItem, 0, len(input.Lines)),
		}
		for i, line := range input.Lines {
			res := lineResults[i]
			purchase.Items = append(purchase.Items, entity.PurchaseItem{
				ProductID:          line.ProductID,
				Quantity:           line.Quantity,
				PriceBeforeTax:     line.PriceBeforeTax,
				DiscountMethod:     line.DiscountMethod,
				DiscountValue:      line.DiscountValue,
				DiscountAmount:     res.DiscountAmount,
				PriceAfterDiscount: res.PriceAfterDiscount,
				GSTPercentage:      priceLines[i].GSTPercentage,
				FinalPrice:         res.FinalPrice,
				LineTotal:          res.LineTotal,
			})
		}
		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		for i, line := range input.Lines {
			if err := s.stockRepo.AddWarehouseStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			product := productMap[line.ProductID]
			unitCost := lineResults[i].PriceAfterDiscount
			newAvg := weightedAverageCost(product.AverageCost, product.Quantity, unitCost, line.Quantity)
			if err := s.productRepo.UpdateCost(ctx, product.ID, unitCost, newAvg); err != nil {
				return err
			}
		}

		created = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetWithItems(ctx, created.ID)
}

// weightedAverageCost folds a new lot into the running average. A zero or
// negative on-hand quantity resets the average to the new unit cost.
func weightedAverageCost(oldAvg decimal.Decimal, oldQty int, unitCost decimal.Decimal, addQty int) decimal.Decimal {
	if oldQty <= 0 {
		return unitCost
	}
	oldTotal := oldAvg.Mul(decimal.NewFromInt(int64(oldQty)))
	newTotal := unitCost.Mul(decimal.NewFromInt(int64(addQty)))
	return oldTotal.Add(newTotal).Div(decimal.NewFromInt(int64(oldQty + addQty))).Round(4)
}

// GetPurchase retrieves a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ReturnItemInput is one line of a return document
type ReturnItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreatePurchaseReturnInput represents the create purchase return input
type CreatePurchaseReturnInput struct {
	CompanyID  uuid.UUID
	PurchaseID *uuid.UUID
	Items      []ReturnItemInput
}

// CreatePurchaseReturn sends stock back to a vendor, debiting the warehouse
func (s *PurchaseService) CreatePurchaseReturn(ctx context.Context, input *CreatePurchaseReturnInput) (*entity.PurchaseReturn, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Return must have at least one item")
	}

	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	var created *entity.PurchaseReturn
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		total := decimal.Zero
		items := make([]entity.ReturnItem, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return apperror.NewBadRequestError("Return quantity must be positive")
			}
			ok, err := s.stockRepo.DecrementWarehouseStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError("Insufficient warehouse stock for return")
			}
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, entity.ReturnItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: pricing.RoundMoney(lineTotal),
			})
		}

		ret := &entity.PurchaseReturn{
			TenantID:    tenantID,
			CompanyID:   input.CompanyID,
			PurchaseID:  input.PurchaseID,
			TotalAmount: pricing.RoundMoney(total),
			Items:       items,
		}
		if err := s.purchaseReturnRepo.Create(ctx, ret); err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateSaleReturnInput represents the create sale return input
type CreateSaleReturnInput struct {
	StoreID uuid.UUID
	BillID  *uuid.UUID
	Items   []ReturnItemInput
}

// CreateSaleReturn takes stock back from a customer, crediting the store
func (s *PurchaseService) CreateSaleReturn(ctx context.Context, input *CreateSaleReturnInput) (*entity.SaleReturn, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Return must have at least one item")
	}

	var created *entity.SaleReturn
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		total := decimal.Zero
		items := make([]entity.ReturnItem, 0, len(input.Items))
		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return apperror.NewBadRequestError("Return quantity must be positive")
			}
			if err := s.stockRepo.AddStoreStock(ctx, input.StoreID, item.ProductID, item.Quantity); err != nil {
				return err
			}
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, entity.ReturnItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: pricing.RoundMoney(lineTotal),
			})
		}

		ret := &entity.SaleReturn{
			TenantID:    tenantID,
			StoreID:     input.StoreID,
			BillID:      input.BillID,
			TotalAmount: pricing.RoundMoney(total),
			Items:       items,
		}
		if err := s.saleReturnRepo.Create(ctx, ret); err != nil {
			return err
		}
		created = ret
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListPurchaseReturns lists purchase returns with filtering
func (s *PurchaseService) ListPurchaseReturns(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.PurchaseReturn], error) {
	rets, total, err := s.purchaseReturnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(rets, pag), nil
}

// ListSaleReturns lists sale returns
func (s *PurchaseService) ListSaleReturns(ctx context.Context, storeID *uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SaleReturn], error) {
	rets, total, err := s.saleReturnRepo.List(ctx, storeID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(rets, pag), nil
}
