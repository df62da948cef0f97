package handler

import (
	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles supplier purchase and return HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func returnItemsFromRequest(items []request.ReturnItemRequest) []service.ReturnItemInput {
	out := make([]service.ReturnItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.ReturnItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return out
}

// Create handles creating a supplier purchase (admin only)
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]service.PurchaseLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, service.PurchaseLineInput{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			PriceBeforeTax: l.PriceBeforeTax,
			DiscountMethod: enum.DiscountMethod(l.DiscountMethod),
			DiscountValue:  l.DiscountValue,
		})
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		CompanyID: req.CompanyID,
		Lines:     lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// Get handles getting a single purchase with its items
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		CompanyID: parseUUID(filter.CompanyID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// CreateReturn handles sending goods back to a supplier (admin only)
func (h *PurchaseHandler) CreateReturn(c *gin.Context) {
	var req request.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ret, err := h.purchaseService.CreatePurchaseReturn(c.Request.Context(), &service.CreatePurchaseReturnInput{
		CompanyID:  req.CompanyID,
		PurchaseID: req.PurchaseID,
		Items:      returnItemsFromRequest(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase return created successfully", ret)
}

// ListReturns handles listing purchase returns
func (h *PurchaseHandler) ListReturns(c *gin.Context) {
	var filter request.PurchaseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		CompanyID: parseUUID(filter.CompanyID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}

	result, err := h.purchaseService.ListPurchaseReturns(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchase returns retrieved successfully", result)
}

// CreateSaleReturn handles taking goods back from a customer into store stock
func (h *PurchaseHandler) CreateSaleReturn(c *gin.Context) {
	var req request.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if storeID := GetStoreID(c); storeID != nil && *storeID != req.StoreID {
		response.Forbidden(c, "Cannot record returns for another store")
		return
	}

	ret, err := h.purchaseService.CreateSaleReturn(c.Request.Context(), &service.CreateSaleReturnInput{
		StoreID: req.StoreID,
		BillID:  req.BillID,
		Items:   returnItemsFromRequest(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale return created successfully", ret)
}

// ListSaleReturns handles listing sale returns
func (h *PurchaseHandler) ListSaleReturns(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	storeID := parseUUID(c.Query("store_id"))
	if opStore := GetStoreID(c); opStore != nil {
		storeID = opStore
	}

	result, err := h.purchaseService.ListSaleReturns(c.Request.Context(), storeID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sale returns retrieved successfully", result)
}
