package service

import (
	"context"
	"testing"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	svc       *AssignmentService
	stockRepo *fakeStockRepo
	store     *entity.Store
	saree     *entity.Product
	shirt     *entity.Product
	ctx       context.Context
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	tenantID := uuid.New()
	store := &entity.Store{TenantID: tenantID, Name: "Madurai", Code: "MDU", State: "Tamil Nadu"}
	saree := &entity.Product{TenantID: tenantID, Name: "Cotton Saree", Code: "SAR-010", GSTPercentage: d("5")}
	shirt := &entity.Product{TenantID: tenantID, Name: "Shirt", Code: "SHT-020", GSTPercentage: d("12")}

	stockRepo := newFakeStockRepo()
	svc := NewAssignmentService(
		newFakeAssignmentRepo(),
		newFakeStoreRepo(store),
		newFakeProductRepo(saree, shirt),
		stockRepo,
		fakeTxManager{},
	)

	return &assignmentFixture{
		svc:       svc,
		stockRepo: stockRepo,
		store:     store,
		saree:     saree,
		shirt:     shirt,
		ctx:       infraRepo.WithTenant(context.Background(), tenantID),
	}
}

func (f *assignmentFixture) create(t *testing.T, items ...AssignmentItemInput) *entity.Assignment {
	t.Helper()
	a, err := f.svc.Create(f.ctx, &CreateAssignmentInput{StoreID: f.store.ID, Items: items})
	require.NoError(t, err)
	return a
}

func TestAssignmentCreateDebitsWarehouse(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	f.stockRepo.AddWarehouseStock(f.ctx, f.shirt.ID, 30)

	a := f.create(t,
		AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20},
		AssignmentItemInput{ProductID: f.shirt.ID, Quantity: 10},
	)

	assert.Equal(t, enum.AssignmentStatusProcess, a.Status)
	assert.Len(t, a.Items, 2)
	assert.Equal(t, 30, f.stockRepo.warehouseQty(f.saree.ID))
	assert.Equal(t, 20, f.stockRepo.warehouseQty(f.shirt.ID))
}

func TestAssignmentCreateInsufficientWarehouseStock(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 5)

	_, err := f.svc.Create(f.ctx, &CreateAssignmentInput{
		StoreID: f.store.ID,
		Items:   []AssignmentItemInput{{ProductID: f.saree.ID, Quantity: 10}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))
}

func TestAssignmentDispatchAndDeliver(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	a := f.create(t, AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20})

	dispatchAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	dispatched, err := f.svc.Dispatch(f.ctx, a.ID, dispatchAt)
	require.NoError(t, err)
	assert.Equal(t, enum.AssignmentStatusDispatched, dispatched.Status)
	require.NotNil(t, dispatched.DispatchDateTime)
	assert.True(t, dispatched.DispatchDateTime.Equal(dispatchAt))

	delivered, err := f.svc.Deliver(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AssignmentStatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, 20, f.stockRepo.storeQty(f.store.ID, f.saree.ID))
	// Warehouse debit from creation stands
	assert.Equal(t, 30, f.stockRepo.warehouseQty(f.saree.ID))
}

func TestAssignmentDeliverRequiresDispatch(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	a := f.create(t, AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20})

	_, err := f.svc.Deliver(f.ctx, a.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
	assert.Equal(t, 0, f.stockRepo.storeQty(f.store.ID, f.saree.ID))
}

func TestAssignmentCancelFromProcess(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	a := f.create(t, AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20})

	canceled, err := f.svc.Cancel(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AssignmentStatusCanceled, canceled.Status)
	assert.Equal(t, 50, f.stockRepo.warehouseQty(f.saree.ID))
}

func TestAssignmentCancelFromDispatched(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	a := f.create(t, AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20})

	_, err := f.svc.Dispatch(f.ctx, a.ID, time.Time{})
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AssignmentStatusCanceled, canceled.Status)
	assert.Equal(t, 50, f.stockRepo.warehouseQty(f.saree.ID))
	assert.Equal(t, 0, f.stockRepo.storeQty(f.store.ID, f.saree.ID))
}

func TestAssignmentCancelAfterDeliveryRejected(t *testing.T) {
	f := newAssignmentFixture(t)
	f.stockRepo.AddWarehouseStock(f.ctx, f.saree.ID, 50)
	a := f.create(t, AssignmentItemInput{ProductID: f.saree.ID, Quantity: 20})

	_, err := f.svc.Dispatch(f.ctx, a.ID, time.Time{})
	require.NoError(t, err)
	_, err = f.svc.Deliver(f.ctx, a.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(f.ctx, a.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidStateTransition))
	assert.Equal(t, 20, f.stockRepo.storeQty(f.store.ID, f.saree.ID))
}

func TestAssignmentCreateValidation(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.svc.Create(f.ctx, &CreateAssignmentInput{StoreID: f.store.ID})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Create(f.ctx, &CreateAssignmentInput{
		StoreID: f.store.ID,
		Items:   []AssignmentItemInput{{ProductID: f.saree.ID, Quantity: 0}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.Create(f.ctx, &CreateAssignmentInput{
		StoreID: uuid.New(),
		Items:   []AssignmentItemInput{{ProductID: f.saree.ID, Quantity: 1}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = f.svc.Create(f.ctx, &CreateAssignmentInput{
		StoreID: f.store.ID,
		Items:   []AssignmentItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
