package handler

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) inputFromRequest(c *gin.Context, req *request.ExpenseRequest) (*service.ExpenseInput, bool) {
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return nil, false
	}

	if opStore := GetStoreID(c); opStore != nil && *opStore != storeID {
		response.Forbidden(c, "Cannot record expenses for another store")
		return nil, false
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return nil, false
	}

	return &service.ExpenseInput{
		StoreID:     storeID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}, true
}

// Create handles creating an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.inputFromRequest(c, &req)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Get handles getting a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Update handles updating an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, ok := h.inputFromRequest(c, &req)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
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

	// Store operators only see their own store's expenses
	if storeID := GetStoreID(c); storeID != nil {
		params.StoreID = storeID
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}
