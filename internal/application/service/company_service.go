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

// CompanyService handles vendor company master data
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput represents create/update company input
type CompanyInput struct {
	Name      string
	GSTNumber *string
	State     string
	Phone     *string
	Address   *string
}

// CreateCompany creates a vendor company
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Company name is required")
	}

	company := &entity.Company{
		TenantID:  tenantID,
		Name:      input.Name,
		GSTNumber: input.GSTNumber,
		State:     input.State,
		Phone:     input.Phone,
		Address:   input.Address,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateCompany updates a vendor company
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	company.Name = input.Name
	company.GSTNumber = input.GSTNumber
	company.State = input.State
	company.Phone = input.Phone
	company.Address = input.Address

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// DeleteCompany soft-deletes a company
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	return s.companyRepo.Delete(ctx, id)
}

// ListCompanies lists companies with search
func (s *CompanyService) ListCompanies(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}
