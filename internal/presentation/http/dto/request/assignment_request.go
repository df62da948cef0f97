package request

import "github.com/google/uuid"

// AssignmentItemRequest is one product line of a warehouse assignment
type AssignmentItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateAssignmentRequest represents a warehouse-to-store assignment request
type CreateAssignmentRequest struct {
	StoreID uuid.UUID               `json:"store_id" binding:"required"`
	Items   []AssignmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// DispatchAssignmentRequest optionally backdates the dispatch moment
type DispatchAssignmentRequest struct {
	DispatchDateTime *string `json:"dispatch_date_time"`
}

// AssignmentFilterRequest represents assignment filter parameters
type AssignmentFilterRequest struct {
	StoreID string `form:"store_id"`
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
