package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer master data. Wallet and coin balances are
// read-only here; they change only through the ledger.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents create/update customer input
type CustomerInput struct {
	Name      string
	Mobile    string
	GSTNumber *string
	State     string
}

// CreateCustomer creates a customer keyed by unique mobile number
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.Name == "" || input.Mobile == "" {
		return nil, apperror.NewBadRequestError("Name and mobile are required")
	}

	existing, err := s.customerRepo.GetByMobile(ctx, input.Mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Mobile number already registered")
	}

	customer := &entity.Customer{
		TenantID:  tenantID,
		Name:      input.Name,
		Mobile:    input.Mobile,
		GSTNumber: input.GSTNumber,
		State:     input.State,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer updates master data fields. Coins and pending amount are
// deliberately untouched.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Mobile != customer.Mobile {
		existing, err := s.customerRepo.GetByMobile(ctx, input.Mobile)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Mobile number already registered")
		}
	}

	customer.Name = input.Name
	customer.Mobile = input.Mobile
	customer.GSTNumber = input.GSTNumber
	customer.State = input.State

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerByMobile looks a customer up by mobile number, the billing
// screen's primary lookup
func (s *CustomerService) GetCustomerByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
