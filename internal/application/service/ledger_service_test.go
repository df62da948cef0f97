package service

import (
	"context"
	"testing"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(customer *entity.Customer) (*LedgerService, *fakeCustomerRepo, *fakeTxnRepo, context.Context) {
	customerRepo := newFakeCustomerRepo(customer)
	txnRepo := &fakeTxnRepo{}
	svc := NewLedgerService(customerRepo, txnRepo, fakeTxManager{})
	ctx := infraRepo.WithTenant(context.Background(), customer.TenantID)
	return svc, customerRepo, txnRepo, ctx
}

func TestGeneratedCoins(t *testing.T) {
	tests := []struct {
		paid string
		want int64
	}{
		{"0", 0},
		{"-50", 0},
		{"99.99", 0},
		{"100", 1},
		{"199.50", 1},
		{"1000", 10},
		{"1049", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GeneratedCoins(d(tt.paid)), "paid %s", tt.paid)
	}
}

func TestValidatePaymentSplit(t *testing.T) {
	err := validatePaymentSplit(d("100"), []PaymentInput{
		{Method: "cash", Amount: d("60")},
		{Method: "upi", Amount: d("40")},
	})
	assert.NoError(t, err)

	err = validatePaymentSplit(d("100"), []PaymentInput{{Method: "cash", Amount: d("90")}})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidPaymentSplit))

	err = validatePaymentSplit(d("100"), []PaymentInput{
		{Method: "cash", Amount: d("150")},
		{Method: "card", Amount: d("-50")},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidPaymentSplit))

	assert.NoError(t, validatePaymentSplit(decimal.Zero, nil))
}

func TestRecordBillUnderpaid(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Ravi", Mobile: "9000000001", Coins: 60}
	svc, customerRepo, _, ctx := newLedgerFixture(customer)

	bill := &entity.Bill{
		ID:         uuid.New(),
		TenantID:   customer.TenantID,
		CustomerID: &customer.ID,
		InvoiceNo:  "INV-000001",
		GrandTotal: d("1050"),
		UsedCoins:  50,
	}

	txn, err := svc.RecordBill(ctx, bill, d("1000"), []PaymentInput{{Method: "cash", Amount: d("1000")}})
	require.NoError(t, err)

	// 60 held - 50 redeemed + 10 accrued on the 1000 paid
	got, err := customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.Coins)
	assert.True(t, got.PendingAmount.Equal(d("-50")), "wallet should carry the unpaid 50, got %s", got.PendingAmount)

	assert.Equal(t, int64(50), txn.UsedCoins)
	assert.Equal(t, int64(10), txn.GeneratedCoins)
	assert.True(t, txn.Outstanding.Equal(d("50")))
	assert.True(t, txn.WalletBalance.Equal(d("-50")))
	require.Len(t, txn.Payments, 1)
	assert.Equal(t, "cash", txn.Payments[0].Method)
}

func TestRecordBillOverpaidBecomesCredit(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Meena", Mobile: "9000000002"}
	svc, customerRepo, _, ctx := newLedgerFixture(customer)

	bill := &entity.Bill{
		ID:         uuid.New(),
		TenantID:   customer.TenantID,
		CustomerID: &customer.ID,
		InvoiceNo:  "INV-000002",
		GrandTotal: d("800"),
	}

	txn, err := svc.RecordBill(ctx, bill, d("1000"), []PaymentInput{{Method: "upi", Amount: d("1000")}})
	require.NoError(t, err)

	got, err := customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, got.PendingAmount.Equal(d("200")))
	assert.True(t, txn.Outstanding.IsZero())
}

func TestRecordBillInsufficientCoins(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Arjun", Mobile: "9000000003", Coins: 10}
	svc, customerRepo, txnRepo, ctx := newLedgerFixture(customer)

	bill := &entity.Bill{
		ID:         uuid.New(),
		TenantID:   customer.TenantID,
		CustomerID: &customer.ID,
		InvoiceNo:  "INV-000003",
		GrandTotal: d("500"),
		UsedCoins:  50,
	}

	_, err := svc.RecordBill(ctx, bill, d("450"), []PaymentInput{{Method: "cash", Amount: d("450")}})
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientCoins))

	got, _ := customerRepo.GetByID(ctx, customer.ID)
	assert.Equal(t, int64(10), got.Coins)
	assert.Empty(t, txnRepo.txns)
}

func TestRecordBillRequiresCustomer(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "X", Mobile: "9000000004"}
	svc, _, _, ctx := newLedgerFixture(customer)

	bill := &entity.Bill{ID: uuid.New(), TenantID: customer.TenantID, GrandTotal: d("100")}
	_, err := svc.RecordBill(ctx, bill, d("100"), []PaymentInput{{Method: "cash", Amount: d("100")}})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPayPendingAllocatesOldestFirst(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Lakshmi", Mobile: "9000000005", PendingAmount: d("-300")}
	svc, customerRepo, txnRepo, ctx := newLedgerFixture(customer)

	first := &entity.WalletTransaction{TenantID: customer.TenantID, CustomerID: customer.ID, BillAmount: d("100"), Outstanding: d("100")}
	second := &entity.WalletTransaction{TenantID: customer.TenantID, CustomerID: customer.ID, BillAmount: d("200"), Outstanding: d("200")}
	require.NoError(t, txnRepo.Create(ctx, first))
	require.NoError(t, txnRepo.Create(ctx, second))

	settlement, err := svc.PayPendingTransactions(ctx, customer.ID, d("150"), []PaymentInput{{Method: "cash", Amount: d("150")}})
	require.NoError(t, err)

	// The oldest entry settles fully, the next absorbs the remainder
	updatedFirst, _ := txnRepo.GetByID(ctx, first.ID)
	updatedSecond, _ := txnRepo.GetByID(ctx, second.ID)
	assert.True(t, updatedFirst.Outstanding.IsZero())
	assert.True(t, updatedFirst.PaidAmount.Equal(d("100")))
	assert.True(t, updatedSecond.Outstanding.Equal(d("150")))
	assert.True(t, updatedSecond.PaidAmount.Equal(d("50")))

	got, _ := customerRepo.GetByID(ctx, customer.ID)
	assert.True(t, got.PendingAmount.Equal(d("-150")))
	assert.Equal(t, int64(1), got.Coins)

	assert.True(t, settlement.WalletBalance.Equal(d("-150")))
	assert.Equal(t, int64(1), settlement.GeneratedCoins)
	assert.True(t, settlement.Outstanding.IsZero())
}

func TestPayPendingOverpaymentLandsAsCredit(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Devi", Mobile: "9000000006", PendingAmount: d("-100")}
	svc, customerRepo, txnRepo, ctx := newLedgerFixture(customer)

	entry := &entity.WalletTransaction{TenantID: customer.TenantID, CustomerID: customer.ID, BillAmount: d("100"), Outstanding: d("100")}
	require.NoError(t, txnRepo.Create(ctx, entry))

	_, err := svc.PayPendingTransactions(ctx, customer.ID, d("250"), []PaymentInput{{Method: "card", Amount: d("250")}})
	require.NoError(t, err)

	updated, _ := txnRepo.GetByID(ctx, entry.ID)
	assert.True(t, updated.Outstanding.IsZero())

	got, _ := customerRepo.GetByID(ctx, customer.ID)
	assert.True(t, got.PendingAmount.Equal(d("150")), "overpayment beyond outstanding becomes credit, got %s", got.PendingAmount)
}

func TestPayPendingNoOutstandingBalance(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Suresh", Mobile: "9000000007"}
	svc, _, _, ctx := newLedgerFixture(customer)

	_, err := svc.PayPendingTransactions(ctx, customer.ID, d("100"), []PaymentInput{{Method: "cash", Amount: d("100")}})
	assert.True(t, apperror.IsKind(err, apperror.KindNoOutstandingBalance))
}

func TestPayPendingRejectsNonPositiveAmount(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Nisha", Mobile: "9000000008"}
	svc, _, _, ctx := newLedgerFixture(customer)

	_, err := svc.PayPendingTransactions(ctx, customer.ID, decimal.Zero, nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGetWalletUnknownCustomer(t *testing.T) {
	customer := &entity.Customer{TenantID: uuid.New(), Name: "Known", Mobile: "9000000009"}
	svc, _, _, ctx := newLedgerFixture(customer)

	_, _, err := svc.GetWallet(ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
