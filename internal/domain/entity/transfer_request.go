package entity

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransferRequest is a store-to-store stock movement request. AcceptedQuantity
// is set exactly once at Accept and immutable afterwards. Status transitions
// are guarded by enum.TransferStatus.CanTransitionTo plus a conditional UPDATE
// on the current status, so racing double-accepts cannot both win.
type TransferRequest struct {
	ID                uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"tenant_id"`
	RequestingStoreID uuid.UUID           `gorm:"type:uuid;not null;index" json:"requesting_store_id"`
	SupplyingStoreID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplying_store_id"`
	ProductID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"product_id"`
	RequestedQuantity int                 `gorm:"not null" json:"requested_quantity"`
	AcceptedQuantity  int                 `gorm:"default:0" json:"accepted_quantity"`
	Status            enum.TransferStatus `gorm:"default:0" json:"status"`

	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	RequestingStore Store   `gorm:"foreignKey:RequestingStoreID" json:"requesting_store,omitempty"`
	SupplyingStore  Store   `gorm:"foreignKey:SupplyingStoreID" json:"supplying_store,omitempty"`
	Product         Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transfer request
func (t *TransferRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransferRequest model
func (TransferRequest) TableName() string {
	return "transfer_requests"
}
