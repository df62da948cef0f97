package service

import (
	"context"
	"testing"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferFixture struct {
	svc        *TransferService
	stockRepo  *fakeStockRepo
	requesting *entity.Store
	supplying  *entity.Store
	product    *entity.Product
	ctx        context.Context
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	tenantID := uuid.New()
	requesting := &entity.Store{TenantID: tenantID, Name: "T Nagar", Code: "TNG", State: "Tamil Nadu"}
	supplying := &entity.Store{TenantID: tenantID, Name: "Anna Nagar", Code: "ANN", State: "Tamil Nadu"}
	product := &entity.Product{TenantID: tenantID, Name: "Silk Saree", Code: "SAR-001", GSTPercentage: d("5")}

	storeRepo := newFakeStoreRepo(requesting, supplying)
	productRepo := newFakeProductRepo(product)
	stockRepo := newFakeStockRepo()
	svc := NewTransferService(newFakeTransferRepo(), storeRepo, productRepo, stockRepo, fakeTxManager{})

	return &transferFixture{
		svc:        svc,
		stockRepo:  stockRepo,
		requesting: requesting,
		supplying:  supplying,
		product:    product,
		ctx:        infraRepo.WithTenant(context.Background(), tenantID),
	}
}

func (f *transferFixture) createPending(t *testing.T, qty int) *entity.TransferRequest {
	t.Helper()
	req, err := f.svc.CreateRequest(f.ctx, &CreateTransferInput{
		RequestingStoreID: f.requesting.ID,
		SupplyingStoreID:  f.supplying.ID,
		ProductID:         f.product.ID,
		RequestedQuantity: qty,
	})
	require.NoError(t, err)
	require.Equal(t, enum.TransferStatusPending, req.Status)
	return req
}

func TestTransferAcceptThenReceive(t *testing.T) {
	f := newTransferFixture(t)
	f.stockRepo.setStore(f.supplying.ID, f.product.ID, 20)
	req := f.createPending(t, 10)

	accepted, err := f.svc.Accept(f.ctx, req.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusAccepted, accepted.Status)
	assert.Equal(t, 8, accepted.AcceptedQuantity)
	assert.NotNil(t, accepted.AcceptedAt)
	assert.Equal(t, 12, f.stockRepo.storeQty(f.supplying.ID, f.product.ID))

	received, err := f.svc.Receive(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)
	assert.Equal(t, 8, f.stockRepo.storeQty(f.requesting.ID, f.product.ID))
	// The supplying store keeps its debit
	assert.Equal(t, 12, f.stockRepo.storeQty(f.supplying.ID, f.product.ID))
}

func TestTransferAcceptQuantityBounds(t *testing.T) {
	f := newTransferFixture(t)
	f.stockRepo.setStore(f.supplying.ID, f.product.ID, 20)
	req := f.createPending(t, 10)

	_, err := f.svc.Accept(f.ctx, req.ID, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Accept(f.ctx, req.ID, 11)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	assert.Equal(t, 20, f.stockRepo.storeQty(f.supplying.ID, f.product.ID))
}

func TestTransferAcceptInsufficientStock(t *testing.T) {
	f := newTransferFixture(t)
	f.stockRepo.setStore(f.supplying.ID, f.product.ID, 3)
	req := f.createPending(t, 10)

	_, err := f.svc.Accept(f.ctx, req.ID, 5)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	unchanged, err := f.svc.GetRequest(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusPending, unchanged.Status)
}

func TestTransferReject(t *testing.T) {
	f := newTransferFixture(t)
	req := f.createPending(t, 5)

	rejected, err := f.svc.Reject(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.RejectedAt)

	// Terminal: no further transitions
	_, err = f.svc.Accept(f.ctx, req.ID, 5)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
	_, err = f.svc.Receive(f.ctx, req.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
}

func TestTransferCancelRestoresSupplyingStock(t *testing.T) {
	f := newTransferFixture(t)
	f.stockRepo.setStore(f.supplying.ID, f.product.ID, 20)
	req := f.createPending(t, 10)

	_, err := f.svc.Accept(f.ctx, req.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stockRepo.storeQty(f.supplying.ID, f.product.ID))

	canceled, err := f.svc.Cancel(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusCanceled, canceled.Status)
	assert.Equal(t, 20, f.stockRepo.storeQty(f.supplying.ID, f.product.ID))
	assert.Equal(t, 0, f.stockRepo.storeQty(f.requesting.ID, f.product.ID))
}

func TestTransferCancelRequiresAccepted(t *testing.T) {
	f := newTransferFixture(t)
	req := f.createPending(t, 5)

	_, err := f.svc.Cancel(f.ctx, req.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
}

func TestTransferReceiveRequiresAccepted(t *testing.T) {
	f := newTransferFixture(t)
	req := f.createPending(t, 5)

	_, err := f.svc.Receive(f.ctx, req.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
}

func TestTransferStoreScoping(t *testing.T) {
	f := newTransferFixture(t)
	f.stockRepo.setStore(f.supplying.ID, f.product.ID, 20)
	req := f.createPending(t, 10)

	// The requesting store cannot act for the supplying side
	requestingCtx := infraRepo.WithStore(f.ctx, f.requesting.ID)
	_, err := f.svc.Accept(requestingCtx, req.ID, 10)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
	_, err = f.svc.Reject(requestingCtx, req.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	supplyingCtx := infraRepo.WithStore(f.ctx, f.supplying.ID)
	_, err = f.svc.Accept(supplyingCtx, req.ID, 10)
	require.NoError(t, err)

	// And the supplying store cannot receive for the requesting side
	_, err = f.svc.Receive(supplyingCtx, req.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	_, err = f.svc.Receive(requestingCtx, req.ID)
	require.NoError(t, err)
}

func TestTransferCreateValidation(t *testing.T) {
	f := newTransferFixture(t)

	_, err := f.svc.CreateRequest(f.ctx, &CreateTransferInput{
		RequestingStoreID: f.requesting.ID,
		SupplyingStoreID:  f.requesting.ID,
		ProductID:         f.product.ID,
		RequestedQuantity: 5,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation), "self-transfer must be rejected")

	_, err = f.svc.CreateRequest(f.ctx, &CreateTransferInput{
		RequestingStoreID: f.requesting.ID,
		SupplyingStoreID:  f.supplying.ID,
		ProductID:         f.product.ID,
		RequestedQuantity: 0,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.CreateRequest(f.ctx, &CreateTransferInput{
		RequestingStoreID: f.requesting.ID,
		SupplyingStoreID:  f.supplying.ID,
		ProductID:         uuid.New(),
		RequestedQuantity: 5,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
