package service

import (
	"context"
	"sync"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes backing the service tests. They mirror the
// conditional-update semantics of the SQL implementations: decrements that
// would go negative report false instead of mutating, and status transitions
// only apply when the row is still in the expected status.

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Mobile == mobile {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) AddCoins(ctx context.Context, id uuid.UUID, delta int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return false, nil
	}
	if c.Coins+delta < 0 {
		return false, nil
	}
	c.Coins += delta
	return true, nil
}

func (r *fakeCustomerRepo) AddPendingAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		c.PendingAmount = c.PendingAmount.Add(delta)
	}
	return nil
}

type fakeTxnRepo struct {
	mu   sync.Mutex
	txns []entity.WalletTransaction
}

func (r *fakeTxnRepo) Create(ctx context.Context, txn *entity.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt = time.Now()
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeTxnRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txns {
		if r.txns[i].ID == id {
			cp := r.txns[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) Update(ctx context.Context, txn *entity.WalletTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txns {
		if r.txns[i].ID == txn.ID {
			r.txns[i] = *txn
			return nil
		}
	}
	return nil
}

func (r *fakeTxnRepo) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.WalletTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.WalletTransaction, len(r.txns))
	copy(out, r.txns)
	return out, int64(len(out)), nil
}

// ListOutstanding preserves insertion order, matching the oldest-first
// allocation order of the SQL implementation.
func (r *fakeTxnRepo) ListOutstanding(ctx context.Context, customerID uuid.UUID) ([]entity.WalletTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.WalletTransaction
	for i := range r.txns {
		if r.txns[i].CustomerID == customerID && r.txns[i].Outstanding.IsPositive() {
			out = append(out, r.txns[i])
		}
	}
	return out, nil
}

type stockKey struct {
	storeID   uuid.UUID
	productID uuid.UUID
}

type fakeStockRepo struct {
	mu        sync.Mutex
	store     map[stockKey]int
	warehouse map[uuid.UUID]int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		store:     make(map[stockKey]int),
		warehouse: make(map[uuid.UUID]int),
	}
}

func (r *fakeStockRepo) setStore(storeID, productID uuid.UUID, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[stockKey{storeID, productID}] = qty
}

func (r *fakeStockRepo) storeQty(storeID, productID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store[stockKey{storeID, productID}]
}

func (r *fakeStockRepo) warehouseQty(productID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warehouse[productID]
}

func (r *fakeStockRepo) GetStoreStock(ctx context.Context, storeID, productID uuid.UUID) (*entity.StoreStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qty, ok := r.store[stockKey{storeID, productID}]
	if !ok {
		return nil, nil
	}
	return &entity.StoreStock{StoreID: storeID, ProductID: productID, Quantity: qty}, nil
}

func (r *fakeStockRepo) ListByStore(ctx context.Context, storeID uuid.UUID, params *pagination.PaginationParams) ([]entity.StoreStock, int64, error) {
	return nil, 0, nil
}

func (r *fakeStockRepo) AddStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[stockKey{storeID, productID}] += amount
	return nil
}

func (r *fakeStockRepo) DecrementStoreStock(ctx context.Context, storeID, productID uuid.UUID, amount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey{storeID, productID}
	if r.store[key] < amount {
		return false, nil
	}
	r.store[key] -= amount
	return true, nil
}

func (r *fakeStockRepo) AddWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouse[productID] += amount
	return nil
}

func (r *fakeStockRepo) DecrementWarehouseStock(ctx context.Context, productID uuid.UUID, amount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.warehouse[productID] < amount {
		return false, nil
	}
	r.warehouse[productID] -= amount
	return true, nil
}

type fakeStoreRepo struct {
	stores map[uuid.UUID]*entity.Store
}

func newFakeStoreRepo(stores ...*entity.Store) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: make(map[uuid.UUID]*entity.Store)}
	for _, s := range stores {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.stores[s.ID] = s
	}
	return r
}

func (r *fakeStoreRepo) Create(ctx context.Context, store *entity.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	r.stores[store.ID] = store
	return nil
}

func (r *fakeStoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeStoreRepo) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	for _, s := range r.stores {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) Update(ctx context.Context, store *entity.Store) error {
	r.stores[store.ID] = store
	return nil
}

func (r *fakeStoreRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.stores, id)
	return nil
}

func (r *fakeStoreRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Store, int64, error) {
	return nil, 0, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) UpdateCost(ctx context.Context, id uuid.UUID, purchasePrice, averageCost decimal.Decimal) error {
	if p, ok := r.products[id]; ok {
		p.PurchasePrice = purchasePrice
		p.AverageCost = averageCost
	}
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

type fakeTransferRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.TransferRequest
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{requests: make(map[uuid.UUID]*entity.TransferRequest)}
}

func (r *fakeTransferRepo) Create(ctx context.Context, req *entity.TransferRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeTransferRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TransferRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeTransferRepo) List(ctx context.Context, params *repository.TransferFilterParams) ([]entity.TransferRequest, int64, error) {
	return nil, 0, nil
}

func (r *fakeTransferRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.TransferStatus, updates map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	for col, val := range updates {
		switch col {
		case "accepted_quantity":
			req.AcceptedQuantity = val.(int)
		case "accepted_at":
			t := val.(time.Time)
			req.AcceptedAt = &t
		case "rejected_at":
			t := val.(time.Time)
			req.RejectedAt = &t
		case "received_at":
			t := val.(time.Time)
			req.ReceivedAt = &t
		case "canceled_at":
			t := val.(time.Time)
			req.CanceledAt = &t
		}
	}
	return true, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[uuid.UUID]*entity.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[uuid.UUID]*entity.Assignment)}
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *entity.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeAssignmentRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) List(ctx context.Context, params *repository.AssignmentFilterParams) ([]entity.Assignment, int64, error) {
	return nil, 0, nil
}

func (r *fakeAssignmentRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enum.AssignmentStatus, updates map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	for col, val := range updates {
		switch col {
		case "dispatch_date_time":
			t := val.(time.Time)
			a.DispatchDateTime = &t
		case "delivered_at":
			t := val.(time.Time)
			a.DeliveredAt = &t
		case "canceled_at":
			t := val.(time.Time)
			a.CanceledAt = &t
		}
	}
	return true, nil
}

type fakeBillRepo struct {
	mu    sync.Mutex
	bills map[uuid.UUID]*entity.Bill
	seqs  map[uuid.UUID]int64
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		bills: make(map[uuid.UUID]*entity.Bill),
		seqs:  make(map[uuid.UUID]int64),
	}
}

func (r *fakeBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	r.bills[bill.ID] = bill
	return nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeBillRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBillRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.InvoiceNo == invoiceNo {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBillRepo) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	return nil, 0, nil
}

func (r *fakeBillRepo) NextInvoiceSeq(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[tenantID]++
	return r.seqs[tenantID], nil
}
