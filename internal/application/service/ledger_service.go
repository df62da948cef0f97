package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CoinsPerRupees is the accrual divisor: 1 loyalty coin per 100 paid
var coinsPerRupees = decimal.NewFromInt(100)

// LedgerService owns the customer wallet: loyalty coins, transaction entries
// and settlement of outstanding balances. All mutations run inside the
// caller's transaction context.
type LedgerService struct {
	customerRepo repository.CustomerRepository
	txnRepo      repository.WalletTransactionRepository
	txManager    repository.TxManager
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	customerRepo repository.CustomerRepository,
	txnRepo repository.WalletTransactionRepository,
	txManager repository.TxManager,
) *LedgerService {
	return &LedgerService{
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		txManager:    txManager,
	}
}

// PaymentInput is one method+amount pair of a payment breakdown
type PaymentInput struct {
	Method string
	Amount decimal.Decimal
}

// validatePaymentSplit checks that the breakdown sums exactly to paidAmount.
// An empty breakdown with a zero paid amount is fine.
func validatePaymentSplit(paidAmount decimal.Decimal, payments []PaymentInput) error {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Amount.IsNegative() {
			return apperror.NewInvalidPaymentSplitError("Payment amounts cannot be negative")
		}
		sum = sum.Add(p.Amount)
	}
	if !sum.Equal(paidAmount) {
		return apperror.NewInvalidPaymentSplitError("Payment methods do not sum to the paid amount")
	}
	return nil
}

// GeneratedCoins returns the coins accrued for a paid amount: one coin per
// full 100 paid, zero when nothing was paid
func GeneratedCoins(paidAmount decimal.Decimal) int64 {
	if !paidAmount.IsPositive() {
		return 0
	}
	return paidAmount.Div(coinsPerRupees).Floor().IntPart()
}

// RecordBill applies a bill's wallet effects: redeems coins, accrues new
// ones, debits the wallet by the unpaid remainder and writes the ledger
// entry. Must be called inside the bill creation transaction; the bill must
// reference an identified customer.
func (s *LedgerService) RecordBill(ctx context.Context, bill *entity.Bill, paidAmount decimal.Decimal, payments []PaymentInput) (*entity.WalletTransaction, error) {
	if bill.CustomerID == nil {
		return nil, apperror.NewBadRequestError("Bill has no customer to record against")
	}
	if err := validatePaymentSplit(paidAmount, payments); err != nil {
		return nil, err
	}

	customerID := *bill.CustomerID

	if bill.UsedCoins > 0 {
		ok, err := s.customerRepo.AddCoins(ctx, customerID, -bill.UsedCoins)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewInsufficientCoinsError("Customer does not hold enough coins")
		}
	}

	generated := GeneratedCoins(paidAmount)
	if generated > 0 {
		if _, err := s.customerRepo.AddCoins(ctx, customerID, generated); err != nil {
			return nil, err
		}
	}

	// Signed wallet delta: negative when the bill was underpaid
	walletDelta := paidAmount.Sub(bill.GrandTotal)
	if !walletDelta.IsZero() {
		if err := s.customerRepo.AddPendingAmount(ctx, customerID, walletDelta); err != nil {
			return nil, err
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	outstanding := bill.GrandTotal.Sub(paidAmount)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	txn := &entity.WalletTransaction{
		TenantID:       bill.TenantID,
		CustomerID:     customerID,
		BillID:         &bill.ID,
		InvoiceNo:      &bill.InvoiceNo,
		BillAmount:     bill.GrandTotal,
		PaidAmount:     paidAmount,
		Outstanding:    outstanding,
		UsedCoins:      bill.UsedCoins,
		GeneratedCoins: generated,
		WalletBalance:  customer.PendingAmount,
		Payments:       make([]entity.TransactionPayment, 0, len(payments)),
	}
	for _, p := range payments {
		txn.Payments = append(txn.Payments, entity.TransactionPayment{
			Method: p.Method,
			Amount: p.Amount,
		})
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// PayPendingTransactions settles a customer's outstanding ledger entries
// oldest-first. The payment is allocated across entries until it runs out;
// anything beyond the total outstanding lands as wallet credit.
func (s *LedgerService) PayPendingTransactions(ctx context.Context, customerID uuid.UUID, paidAmount decimal.Decimal, payments []PaymentInput) (*entity.WalletTransaction, error) {
	if !paidAmount.IsPositive() {
		return nil, apperror.NewBadRequestError("Paid amount must be positive")
	}
	if err := validatePaymentSplit(paidAmount, payments); err != nil {
		return nil, err
	}

	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	var settlement *entity.WalletTransaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		outstanding, err := s.txnRepo.ListOutstanding(ctx, customerID)
		if err != nil {
			return err
		}
		if len(outstanding) == 0 {
			return apperror.NewNoOutstandingBalanceError("Customer has no outstanding balance")
		}

		remaining := paidAmount
		for i := range outstanding {
			if !remaining.IsPositive() {
				break
			}
			alloc := outstanding[i].Outstanding
			if alloc.GreaterThan(remaining) {
				alloc = remaining
			}
			outstanding[i].Outstanding = outstanding[i].Outstanding.Sub(alloc)
			outstanding[i].PaidAmount = outstanding[i].PaidAmount.Add(alloc)
			if err := s.txnRepo.Update(ctx, &outstanding[i]); err != nil {
				return err
			}
			remaining = remaining.Sub(alloc)
		}

		if err := s.customerRepo.AddPendingAmount(ctx, customerID, paidAmount); err != nil {
			return err
		}

		generated := GeneratedCoins(paidAmount)
		if generated > 0 {
			if _, err := s.customerRepo.AddCoins(ctx, customerID, generated); err != nil {
				return err
			}
		}

		settlement = &entity.WalletTransaction{
			TenantID:       tenantID,
			CustomerID:     customerID,
			PaidAmount:     paidAmount,
			Outstanding:    decimal.Zero,
			GeneratedCoins: generated,
			WalletBalance:  customer.PendingAmount.Add(paidAmount),
			Payments:       make([]entity.TransactionPayment, 0, len(payments)),
		}
		for _, p := range payments {
			settlement.Payments = append(settlement.Payments, entity.TransactionPayment{
				Method: p.Method,
				Amount: p.Amount,
			})
		}
		return s.txnRepo.Create(ctx, settlement)
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListTransactions lists ledger entries with filtering
func (s *LedgerService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.WalletTransaction], error) {
	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// GetWallet returns a customer's current wallet and coin balances together
// with any unsettled entries
func (s *LedgerService) GetWallet(ctx context.Context, customerID uuid.UUID) (*entity.Customer, []entity.WalletTransaction, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, apperror.NewNotFoundError("Customer")
	}

	outstanding, err := s.txnRepo.ListOutstanding(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return customer, outstanding, nil
}
