package handler

import (
	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoreHandler handles store HTTP requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// Create handles creating a store (admin only)
func (h *StoreHandler) Create(c *gin.Context) {
	var req request.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), &service.StoreInput{
		Name:    req.Name,
		Code:    req.Code,
		State:   req.State,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store created successfully", store)
}

// Get handles getting a single store
func (h *StoreHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	store, err := h.storeService.GetStore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved successfully", store)
}

// Update handles updating a store (admin only)
func (h *StoreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	var req request.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), id, &service.StoreInput{
		Name:    req.Name,
		Code:    req.Code,
		State:   req.State,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", store)
}

// Delete handles deleting a store (admin only)
func (h *StoreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	if err := h.storeService.DeleteStore(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing stores
func (h *StoreHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.storeService.ListStores(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stores retrieved successfully", result)
}

// ListStock handles listing a store's on-hand stock
func (h *StoreHandler) ListStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	// Store operators only see their own store's stock
	if storeID := GetStoreID(c); storeID != nil && *storeID != id {
		response.Forbidden(c, "Cannot view another store's stock")
		return
	}

	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.storeService.ListStoreStock(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Store stock retrieved successfully", result)
}
