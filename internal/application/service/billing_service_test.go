package service

import (
	"context"
	"testing"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type billingFixture struct {
	svc          *BillingService
	customerRepo *fakeCustomerRepo
	txnRepo      *fakeTxnRepo
	stockRepo    *fakeStockRepo
	store        *entity.Store
	customer     *entity.Customer
	saree        *entity.Product
	ctx          context.Context
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	tenantID := uuid.New()
	store := &entity.Store{TenantID: tenantID, Name: "Coimbatore", Code: "CBE", State: "Tamil Nadu"}
	customer := &entity.Customer{TenantID: tenantID, Name: "Priya", Mobile: "9876543210", State: "Tamil Nadu", Coins: 200}
	saree := &entity.Product{TenantID: tenantID, Name: "Silk Saree", Code: "SAR-100", GSTPercentage: d("5")}

	customerRepo := newFakeCustomerRepo(customer)
	txnRepo := &fakeTxnRepo{}
	stockRepo := newFakeStockRepo()
	ledger := NewLedgerService(customerRepo, txnRepo, fakeTxManager{})
	svc := NewBillingService(
		newFakeBillRepo(),
		newFakeProductRepo(saree),
		customerRepo,
		newFakeStoreRepo(store),
		stockRepo,
		ledger,
		fakeTxManager{},
	)

	return &billingFixture{
		svc:          svc,
		customerRepo: customerRepo,
		txnRepo:      txnRepo,
		stockRepo:    stockRepo,
		store:        store,
		customer:     customer,
		saree:        saree,
		ctx:          infraRepo.WithTenant(context.Background(), tenantID),
	}
}

func (f *billingFixture) sareeLine(qty int, price string) BillLineInput {
	return BillLineInput{
		ProductID:      f.saree.ID,
		Quantity:       qty,
		PriceBeforeTax: d(price),
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
	}
}

func TestCreateBillFullyPaid(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	bill, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(2, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("2100"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("2100")}},
	})
	require.NoError(t, err)

	// 2 x 1000 at 5% GST, intra-state
	assert.Equal(t, "INV-000001", bill.InvoiceNo)
	assert.True(t, bill.SubTotal.Equal(d("2000")))
	assert.True(t, bill.TotalGST.Equal(d("100")))
	assert.True(t, bill.GrandTotal.Equal(d("2100")))
	assert.True(t, bill.CGST.Equal(d("50")))
	assert.True(t, bill.SGST.Equal(d("50")))
	assert.True(t, bill.IGST.IsZero())
	assert.Equal(t, enum.GSTTypeCGSTSGST, bill.GSTType)
	assert.Equal(t, enum.PaymentStatusPaid, bill.PaymentStatus)
	assert.Equal(t, "Priya", bill.CustomerName)
	require.Len(t, bill.Items, 1)
	assert.True(t, bill.Items[0].FinalPrice.Equal(d("1050")))
	assert.True(t, bill.Items[0].LineTotal.Equal(d("2100")))

	assert.Equal(t, 8, f.stockRepo.storeQty(f.store.ID, f.saree.ID))

	// Ledger: 21 coins accrued, nothing outstanding
	customer, _ := f.customerRepo.GetByID(f.ctx, f.customer.ID)
	assert.Equal(t, int64(221), customer.Coins)
	assert.True(t, customer.PendingAmount.IsZero())
	require.Len(t, f.txnRepo.txns, 1)
	assert.True(t, f.txnRepo.txns[0].Outstanding.IsZero())
}

func TestCreateBillUnderpaidGoesOnWallet(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	bill, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(2, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1000"),
		Payments:       []PaymentInput{{Method: "upi", Amount: d("1000")}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusUnpaid, bill.PaymentStatus)

	customer, _ := f.customerRepo.GetByID(f.ctx, f.customer.ID)
	assert.True(t, customer.PendingAmount.Equal(d("-1100")))
	require.Len(t, f.txnRepo.txns, 1)
	assert.True(t, f.txnRepo.txns[0].Outstanding.Equal(d("1100")))
}

func TestCreateBillRedeemsCoins(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	bill, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(2, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		UsedCoins:      100,
		PaidAmount:     d("2000"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("2000")}},
	})
	require.NoError(t, err)

	// 100 coins knock 100 off the grand total
	assert.True(t, bill.GrandTotal.Equal(d("2000")))
	assert.Equal(t, enum.PaymentStatusPaid, bill.PaymentStatus)

	// 200 held - 100 redeemed + 20 accrued on the 2000 paid
	customer, _ := f.customerRepo.GetByID(f.ctx, f.customer.ID)
	assert.Equal(t, int64(120), customer.Coins)
}

func TestCreateBillWalkIn(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	bill, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerName:   "Walk-in",
		Lines:          []BillLineInput{f.sareeLine(1, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1050"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("1050")}},
	})
	require.NoError(t, err)

	// Walk-ins are taxed as intra-state and earn no coins
	assert.Equal(t, enum.GSTTypeCGSTSGST, bill.GSTType)
	assert.Equal(t, "Walk-in", bill.CustomerName)
	assert.Equal(t, int64(0), bill.GeneratedCoins)
	assert.Empty(t, f.txnRepo.txns)
}

func TestCreateBillInterStateCustomer(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)
	f.customer.State = "Kerala"

	bill, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(2, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("2100"),
		Payments:       []PaymentInput{{Method: "card", Amount: d("2100")}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.GSTTypeIGST, bill.GSTType)
	assert.True(t, bill.IGST.Equal(d("100")))
	assert.True(t, bill.CGST.IsZero())
	assert.True(t, bill.SGST.IsZero())
}

func TestCreateBillInsufficientStock(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 1)

	_, err := f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(2, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("2100"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("2100")}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
	assert.Equal(t, 1, f.stockRepo.storeQty(f.store.ID, f.saree.ID))
}

func TestCreateBillInvoiceNumbering(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	input := &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(1, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1050"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("1050")}},
	}

	first, err := f.svc.CreateBill(f.ctx, input)
	require.NoError(t, err)
	second, err := f.svc.CreateBill(f.ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", first.InvoiceNo)
	assert.Equal(t, "INV-000002", second.InvoiceNo)
	assert.Equal(t, int64(1), first.InvoiceSeq)
	assert.Equal(t, int64(2), second.InvoiceSeq)
}

func TestCreateBillValidation(t *testing.T) {
	f := newBillingFixture(t)
	f.stockRepo.setStore(f.store.ID, f.saree.ID, 10)

	_, err := f.svc.CreateBill(f.ctx, &CreateBillInput{StoreID: f.store.ID})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "empty bill must be rejected")

	// Coins without an identified customer
	_, err = f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		Lines:          []BillLineInput{f.sareeLine(1, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		UsedCoins:      10,
		PaidAmount:     d("1040"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("1040")}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Payment breakdown must sum to the paid amount
	_, err = f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        f.store.ID,
		CustomerID:     &f.customer.ID,
		Lines:          []BillLineInput{f.sareeLine(1, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1050"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("900")}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidPaymentSplit))

	// Unknown store
	_, err = f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID:        uuid.New(),
		Lines:          []BillLineInput{f.sareeLine(1, "1000")},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1050"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("1050")}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// Unknown product on a line
	_, err = f.svc.CreateBill(f.ctx, &CreateBillInput{
		StoreID: f.store.ID,
		Lines: []BillLineInput{{
			ProductID:      uuid.New(),
			Quantity:       1,
			PriceBeforeTax: d("1000"),
			DiscountMethod: enum.DiscountMethodPercentage,
			DiscountValue:  decimal.Zero,
		}},
		DiscountMethod: enum.DiscountMethodPercentage,
		DiscountValue:  decimal.Zero,
		PaidAmount:     d("1050"),
		Payments:       []PaymentInput{{Method: "cash", Amount: d("1050")}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
