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

// BillingService creates and reads bills. A bill is computed entirely through
// the pricing engine, numbered from the tenant's atomic sequence, and written
// together with its stock and wallet effects in one transaction.
type BillingService struct {
	billRepo     repository.BillRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	stockRepo    repository.StockRepository
	ledger       *LedgerService
	txManager    repository.TxManager
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo repository.BillRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	stockRepo repository.StockRepository,
	ledger *LedgerService,
	txManager repository.TxManager,
) *BillingService {
	return &BillingService{
		billRepo:     billRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		stockRepo:    stockRepo,
		ledger:       ledger,
		txManager:    txManager,
	}
}

// BillLineInput is one raw line of a bill request
type BillLineInput struct {
	ProductID      uuid.UUID
	Quantity       int
	PriceBeforeTax decimal.Decimal
	DiscountMethod enum.DiscountMethod
	DiscountValue  decimal.Decimal
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	StoreID        uuid.UUID
	CustomerID     *uuid.UUID
	CustomerName   string
	Lines          []BillLineInput
	DiscountMethod enum.DiscountMethod
	DiscountValue  decimal.Decimal
	UsedCoins      int64
	PaidAmount     decimal.Decimal
	Payments       []PaymentInput
}

// CreateBill creates a bill with its items, stock decrement and wallet
// effects as one atomic operation
func (s *BillingService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Bill must have at least one item")
	}
	if err := validatePaymentSplit(input.PaidAmount, input.Payments); err != nil {
		return nil, err
	}
	if input.UsedCoins < 0 {
		return nil, apperror.NewBadRequestError("Used coins cannot be negative")
	}
	if input.UsedCoins > 0 && input.CustomerID == nil {
		return nil, apperror.NewBadRequestError("Coins require an identified customer")
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	// Counterparty state defaults to the store's own state for walk-ins,
	// which labels the bill CGST_SGST
	customerName := input.CustomerName
	customerState := store.State
	var customer *entity.Customer
	if input.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
		if customer.State != "" {
			customerState = customer.State
		}
	}

	// Batch fetch all products in one query (prevents N+1)
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

	totals, lineResults, err := pricing.ComputeBillTotals(
		priceLines, input.DiscountMethod, input.DiscountValue, input.UsedCoins,
		store.State, customerState)
	if err != nil {
		return nil, err
	}

	var created *entity.Bill
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// Atomic per-line stock decrements; any shortfall aborts the whole bill
		for _, line := range input.Lines {
			ok, err := s.stockRepo.DecrementStoreStock(ctx, input.StoreID, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(
					fmt.Sprintf("Insufficient stock for %s", productMap[line.ProductID].Name))
			}
		}

		seq, err := s.billRepo.NextInvoiceSeq(ctx, tenantID)
		if err != nil {
			return err
		}

		paymentStatus := enum.PaymentStatusUnpaid
		if input.PaidAmount.GreaterThanOrEqual(totals.GrandTotal) {
			paymentStatus = enum.PaymentStatusPaid
		}

		bill := &entity.Bill{
			TenantID:       tenantID,
			StoreID:        input.StoreID,
			InvoiceNo:      utils.FormatInvoiceNo(seq),
			InvoiceSeq:     seq,
			CustomerID:     input.CustomerID,
			CustomerName:   customerName,
			CustomerState:  customerState,
			DiscountMethod: input.DiscountMethod,
			DiscountValue:  input.DiscountValue,
			PaymentStatus:  paymentStatus,
			PaidAmount:     input.PaidAmount,
			UsedCoins:      input.UsedCoins,
			GSTType:        pricing.GSTTypeFor(store.State, customerState),
			SubTotal:       totals.SubTotal,
			TotalGST:       totals.TotalGST,
			CGST:           pricing.RoundMoney(totals.Split.CGST),
			SGST:           pricing.RoundMoney(totals.Split.SGST),
			IGST:           pricing.RoundMoney(totals.Split.IGST),
			GrandTotal:     totals.GrandTotal,
		}
		if customer != nil {
			bill.CustomerMobile = &customer.Mobile
			bill.CustomerGSTNumber = customer.GSTNumber
			bill.GeneratedCoins = GeneratedCoins(input.PaidAmount)
		}

		bill.Items = make([]entity.BillItem, 0, len(input.Lines))
		for i, line := range input.Lines {
			product := productMap[line.ProductID]
			res := lineResults[i]
			bill.Items = append(bill.Items, entity.BillItem{
				ProductID:          product.ID,
				ProductName:        product.Name,
				ProductCode:        product.Code,
				HSNCode:            product.HSNCode,
				Quantity:           line.Quantity,
				PriceBeforeTax:     line.PriceBeforeTax,
				DiscountMethod:     line.DiscountMethod,
				DiscountValue:      line.DiscountValue,
				DiscountAmount:     res.DiscountAmount,
				PriceAfterDiscount: res.PriceAfterDiscount,
				GSTPercentage:      product.GSTPercentage,
				FinalPrice:         res.FinalPrice,
				LineTotal:          res.LineTotal,
			})
		}

		if err := s.billRepo.Create(ctx, bill); err != nil {
			return err
		}

		if customer != nil {
			if _, err := s.ledger.RecordBill(ctx, bill, input.PaidAmount, input.Payments); err != nil {
				return err
			}
		}

		created = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, created.ID)
}

// GetBill retrieves a bill with its items
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillingService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
