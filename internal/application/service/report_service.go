package service

import (
	"context"

	"github.com/ajjawam/ajjawam-api/internal/domain/entity"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportService assembles the reporting views. Every list is also exportable
// as a spreadsheet by the handler layer; both consume the same rows.
type ReportService struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	expenseRepo repository.ExpenseRepository
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	expenseRepo repository.ExpenseRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		productRepo: productRepo,
		expenseRepo: expenseRepo,
	}
}

// SalesSummary returns per-day, per-store billing aggregates
func (s *ReportService) SalesSummary(ctx context.Context, params *repository.ReportFilterParams) ([]repository.SalesSummaryRow, error) {
	return s.reportRepo.SalesSummary(ctx, params)
}

// GSTSummary returns tax aggregates per GST rate
func (s *ReportService) GSTSummary(ctx context.Context, params *repository.ReportFilterParams) ([]repository.GSTSummaryRow, error) {
	return s.reportRepo.GSTSummary(ctx, params)
}

// StockReport returns the warehouse catalog with on-hand quantities,
// flagging low-stock items
func (s *ReportService) StockReport(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListAll(ctx)
}

// ExpenseReport returns the filtered expense rows together with their total
func (s *ReportService) ExpenseReport(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, decimal.Decimal, error) {
	expenses, _, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total, err := s.reportRepo.ExpenseTotal(ctx, &repository.ReportFilterParams{
		StoreID:   params.StoreID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return expenses, total, nil
}
