package handler

import (
	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/export"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillHandler handles billing HTTP requests
type BillHandler struct {
	billingService *service.BillingService
	ledgerService  *service.LedgerService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService, ledgerService *service.LedgerService) *BillHandler {
	return &BillHandler{billingService: billingService, ledgerService: ledgerService}
}

func paymentsFromRequest(payments []request.PaymentRequest) []service.PaymentInput {
	out := make([]service.PaymentInput, 0, len(payments))
	for _, p := range payments {
		out = append(out, service.PaymentInput{Method: p.Method, Amount: p.Amount})
	}
	return out
}

// Create handles bill creation
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// Store operators can only bill through their own store
	if storeID := GetStoreID(c); storeID != nil && *storeID != req.StoreID {
		response.Forbidden(c, "Cannot bill on behalf of another store")
		return
	}

	lines := make([]service.BillLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, service.BillLineInput{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			PriceBeforeTax: l.PriceBeforeTax,
			DiscountMethod: enum.DiscountMethod(l.DiscountMethod),
			DiscountValue:  l.DiscountValue,
		})
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		StoreID:        req.StoreID,
		CustomerID:     req.CustomerID,
		CustomerName:   req.CustomerName,
		Lines:          lines,
		DiscountMethod: enum.DiscountMethod(req.DiscountMethod),
		DiscountValue:  req.DiscountValue,
		UsedCoins:      req.UsedCoins,
		PaidAmount:     req.PaidAmount,
		Payments:       paymentsFromRequest(req.Payments),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// Get handles getting a single bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:         filter.Search,
		StoreID:        parseUUID(filter.StoreID),
		CustomerID:     parseUUID(filter.CustomerID),
		CustomerMobile: filter.CustomerMobile,
		StartDate:      parseDate(filter.StartDate),
		EndDate:        parseDate(filter.EndDate),
		SortBy:         filter.SortBy,
		SortOrder:      filter.SortOrder,
	}

	if filter.PaymentStatus != "" {
		if status, ok := enum.ParsePaymentStatus(filter.PaymentStatus); ok {
			params.PaymentStatus = &status
		}
	}

	// Store operators only see their own store's bills
	if storeID := GetStoreID(c); storeID != nil {
		params.StoreID = storeID
	}

	result, err := h.billingService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("exportExcel") == "true" {
		data := make([][]interface{}, 0, len(result.Items))
		for _, b := range result.Items {
			data = append(data, []interface{}{
				b.InvoiceNo,
				b.CreatedAt.Format("2006-01-02"),
				b.CustomerName,
				b.PaymentStatus.String(),
				b.SubTotal.InexactFloat64(),
				b.TotalGST.InexactFloat64(),
				b.GrandTotal.InexactFloat64(),
				b.PaidAmount.InexactFloat64(),
			})
		}
		serveWorkbook(c, "bills.xlsx", export.Sheet{
			Name: "Bills",
			Headers: []string{
				"Invoice No", "Date", "Customer", "Status",
				"Sub Total", "Total GST", "Grand Total", "Paid",
			},
			Rows: data,
		})
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// PayPending settles a customer's outstanding transactions oldest-first
func (h *BillHandler) PayPending(c *gin.Context) {
	var req request.PayPendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	txn, err := h.ledgerService.PayPendingTransactions(
		c.Request.Context(), req.CustomerID, req.PaidAmount, paymentsFromRequest(req.Payments))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", txn)
}

// ListTransactions handles listing wallet transactions
func (h *BillHandler) ListTransactions(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		CustomerID: parseUUID(filter.CustomerID),
		Unsettled:  filter.Unsettled,
		StartDate:  parseDate(filter.StartDate),
		EndDate:    parseDate(filter.EndDate),
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// GetWallet returns a customer's coin balance, pending amount and open
// transactions
func (h *BillHandler) GetWallet(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, outstanding, err := h.ledgerService.GetWallet(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wallet retrieved successfully", gin.H{
		"customer":       customer,
		"coins":          customer.Coins,
		"pending_amount": customer.PendingAmount,
		"outstanding":    outstanding,
	})
}
