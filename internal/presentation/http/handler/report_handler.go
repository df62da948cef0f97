package handler

import (
	"net/http"

	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/export"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles reporting HTTP requests. Every report is served as
// JSON by default and as an .xlsx download when ?exportExcel=true.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) reportParams(c *gin.Context) (*repository.ReportFilterParams, bool) {
	var filter request.ReportFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return nil, false
	}

	params := &repository.ReportFilterParams{
		StoreID:   parseUUID(filter.StoreID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}

	// Store operators only see their own store's numbers
	if storeID := GetStoreID(c); storeID != nil {
		params.StoreID = storeID
	}

	return params, true
}

func serveWorkbook(c *gin.Context, filename string, sheets ...export.Sheet) {
	buf, err := export.BuildWorkbook(sheets...)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// SalesSummary returns per-day, per-store billing aggregates
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	params, ok := h.reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reportService.SalesSummary(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("exportExcel") == "true" {
		data := make([][]interface{}, 0, len(rows))
		for _, r := range rows {
			data = append(data, []interface{}{
				r.Date.Format("2006-01-02"),
				r.StoreName,
				r.BillCount,
				r.SubTotal.InexactFloat64(),
				r.TotalGST.InexactFloat64(),
				r.GrandTotal.InexactFloat64(),
			})
		}
		serveWorkbook(c, "sales-summary.xlsx", export.Sheet{
			Name:    "Sales Summary",
			Headers: []string{"Date", "Store", "Bills", "Sub Total", "Total GST", "Grand Total"},
			Rows:    data,
		})
		return
	}

	response.OK(c, "Sales summary retrieved successfully", rows)
}

// GSTSummary returns tax aggregates per GST rate
func (h *ReportHandler) GSTSummary(c *gin.Context) {
	params, ok := h.reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GSTSummary(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("exportExcel") == "true" {
		data := make([][]interface{}, 0, len(rows))
		for _, r := range rows {
			data = append(data, []interface{}{
				r.GSTPercentage.InexactFloat64(),
				r.TaxableAmount.InexactFloat64(),
				r.CGST.InexactFloat64(),
				r.SGST.InexactFloat64(),
				r.IGST.InexactFloat64(),
			})
		}
		serveWorkbook(c, "gst-summary.xlsx", export.Sheet{
			Name:    "GST Summary",
			Headers: []string{"GST %", "Taxable Amount", "CGST", "SGST", "IGST"},
			Rows:    data,
		})
		return
	}

	response.OK(c, "GST summary retrieved successfully", rows)
}

// StockReport returns the warehouse catalog with on-hand quantities
func (h *ReportHandler) StockReport(c *gin.Context) {
	products, err := h.reportService.StockReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("exportExcel") == "true" {
		data := make([][]interface{}, 0, len(products))
		for _, p := range products {
			hsn := ""
			if p.HSNCode != nil {
				hsn = *p.HSNCode
			}
			data = append(data, []interface{}{
				p.Code,
				p.Name,
				hsn,
				p.GSTPercentage.InexactFloat64(),
				p.Quantity,
				p.QuantityAlert,
				p.AverageCost.InexactFloat64(),
				p.SellingPrice.InexactFloat64(),
				p.PrintPrice,
			})
		}
		serveWorkbook(c, "stock-report.xlsx", export.Sheet{
			Name: "Stock Report",
			Headers: []string{
				"Code", "Name", "HSN", "GST %", "Quantity", "Alert At",
				"Average Cost", "Selling Price", "Print Price",
			},
			Rows: data,
		})
		return
	}

	response.OK(c, "Stock report retrieved successfully", products)
}

// ExpenseReport returns filtered expenses with their total
func (h *ReportHandler) ExpenseReport(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StoreID:   parseUUID(filter.StoreID),
		Category:  filter.Category,
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}

	if storeID := GetStoreID(c); storeID != nil {
		params.StoreID = storeID
	}

	expenses, total, err := h.reportService.ExpenseReport(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("exportExcel") == "true" {
		data := make([][]interface{}, 0, len(expenses))
		for _, e := range expenses {
			desc := ""
			if e.Description != nil {
				desc = *e.Description
			}
			data = append(data, []interface{}{
				e.Date.Format("2006-01-02"),
				e.Category,
				desc,
				e.Amount.InexactFloat64(),
			})
		}
		serveWorkbook(c, "expense-report.xlsx", export.Sheet{
			Name:    "Expenses",
			Headers: []string{"Date", "Category", "Description", "Amount"},
			Rows:    data,
		})
		return
	}

	response.OK(c, "Expense report retrieved successfully", gin.H{
		"expenses": expenses,
		"total":    total,
	})
}
