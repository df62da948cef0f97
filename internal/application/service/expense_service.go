package service

import (
	"context"
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	infraRepo "github.com/ajjawam/ajjawam-api/internal/infrastructure/repository"
	"github.com/ajjawam/ajjawam-api/pkg/apperror"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService handles per-store expense records
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	storeRepo   repository.StoreRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, storeRepo repository.StoreRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, storeRepo: storeRepo}
}

// ExpenseInput represents create/update expense input
type ExpenseInput struct {
	StoreID     uuid.UUID
	Category    string
	Description *string
	Amount      decimal.Decimal
	Date        time.Time
}

func (s *ExpenseService) validate(input *ExpenseInput) error {
	if input.Category == "" {
		return apperror.NewBadRequestError("Expense category is required")
	}
	if !input.Amount.IsPositive() {
		return apperror.NewBadRequestError("Expense amount must be positive")
	}
	if input.Date.IsZero() {
		return apperror.NewBadRequestError("Expense date is required")
	}
	return nil
}

// CreateExpense records an expense against a store
func (s *ExpenseService) CreateExpense(ctx context.Context, input *ExpenseInput) (*entity.Expense, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	expense := &entity.Expense{
		TenantID:    tenantID,
		StoreID:     input.StoreID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense updates an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	expense.Category = input.Category
	expense.Description = input.Description
	expense.Amount = input.Amount
	expense.Date = input.Date

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}
