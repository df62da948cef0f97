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

// TransferHandler handles inter-store transfer HTTP requests
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create handles creating a transfer request
func (h *TransferHandler) Create(c *gin.Context) {
	var req request.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	// Store operators can only request stock for their own store
	if storeID := GetStoreID(c); storeID != nil && *storeID != req.RequestingStoreID {
		response.Forbidden(c, "Cannot request stock on behalf of another store")
		return
	}

	transfer, err := h.transferService.CreateRequest(c.Request.Context(), &service.CreateTransferInput{
		RequestingStoreID: req.RequestingStoreID,
		SupplyingStoreID:  req.SupplyingStoreID,
		ProductID:         req.ProductID,
		RequestedQuantity: req.RequestedQuantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer request created successfully", transfer)
}

// Get handles getting a single transfer request
func (h *TransferHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.GetRequest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer request retrieved successfully", transfer)
}

// List handles listing transfer requests
func (h *TransferHandler) List(c *gin.Context) {
	var filter request.TransferFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TransferFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		RequestingStoreID: parseUUID(filter.RequestingStoreID),
		SupplyingStoreID:  parseUUID(filter.SupplyingStoreID),
	}

	if filter.Status != "" {
		if status, ok := enum.ParseTransferStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	result, err := h.transferService.ListRequests(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transfer requests retrieved successfully", result)
}

// Accept handles the supplying store committing stock to a transfer
func (h *TransferHandler) Accept(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	var req request.AcceptTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	transfer, err := h.transferService.Accept(c.Request.Context(), id, req.AcceptedQuantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer request accepted", transfer)
}

// Reject handles the supplying store declining a transfer
func (h *TransferHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.Reject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer request rejected", transfer)
}

// Receive handles the requesting store confirming delivery
func (h *TransferHandler) Receive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.Receive(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer received", transfer)
}

// Cancel handles the supplying store recalling an accepted transfer
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer canceled", transfer)
}
