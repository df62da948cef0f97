package handler

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/application/service"
	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/ajjawam/ajjawam-api/internal/domain/repository"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/request"
	"github.com/ajjawam/ajjawam-api/internal/presentation/http/dto/response"
	"github.com/ajjawam/ajjawam-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignmentHandler handles warehouse assignment HTTP requests
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Create handles creating a warehouse-to-store assignment (admin only)
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req request.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.AssignmentItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.AssignmentItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), &service.CreateAssignmentInput{
		StoreID: req.StoreID,
		Items:   items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Assignment created successfully", assignment)
}

// Get handles getting a single assignment with its items
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assignment retrieved successfully", assignment)
}

// List handles listing assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter request.AssignmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AssignmentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StoreID: parseUUID(filter.StoreID),
	}

	if filter.Status != "" {
		if status, ok := enum.ParseAssignmentStatus(filter.Status); ok {
			params.Status = &status
		}
	}

	// Store operators only see assignments destined for their store
	if storeID := GetStoreID(c); storeID != nil {
		params.StoreID = storeID
	}

	result, err := h.assignmentService.ListAssignments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Assignments retrieved successfully", result)
}

// Dispatch marks an assignment as sent from the warehouse (admin only)
func (h *AssignmentHandler) Dispatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	var req request.DispatchAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dispatchAt := time.Now()
	if req.DispatchDateTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DispatchDateTime)
		if err != nil {
			response.BadRequest(c, "Invalid dispatch_date_time, expected RFC3339")
			return
		}
		dispatchAt = parsed
	}

	assignment, err := h.assignmentService.Dispatch(c.Request.Context(), id, dispatchAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assignment dispatched", assignment)
}

// Deliver confirms arrival at the store and moves goods into store stock
func (h *AssignmentHandler) Deliver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.Deliver(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assignment delivered", assignment)
}

// Cancel aborts an assignment and restores warehouse stock (admin only)
func (h *AssignmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assignment ID")
		return
	}

	assignment, err := h.assignmentService.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assignment canceled", assignment)
}
