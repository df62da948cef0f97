package request

import "github.com/google/uuid"

// CreateTransferRequest represents an inter-store transfer request
type CreateTransferRequest struct {
	RequestingStoreID uuid.UUID `json:"requesting_store_id" binding:"required"`
	SupplyingStoreID  uuid.UUID `json:"supplying_store_id" binding:"required"`
	ProductID         uuid.UUID `json:"product_id" binding:"required"`
	RequestedQuantity int       `json:"requested_quantity" binding:"required,min=1"`
}

// AcceptTransferRequest carries the quantity the supplying store commits.
// It may be lower than requested but never higher.
type AcceptTransferRequest struct {
	AcceptedQuantity int `json:"accepted_quantity" binding:"required,min=1"`
}

// TransferFilterRequest represents transfer filter parameters
type TransferFilterRequest struct {
	RequestingStoreID string `form:"requesting_store_id"`
	SupplyingStoreID  string `form:"supplying_store_id"`
	Status            string `form:"status"`
	Page              int    `form:"page"`
	PerPage           int    `form:"per_page"`
}
