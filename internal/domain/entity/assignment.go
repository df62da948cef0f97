package entity

import (
	"time"

	"github.com/ajjawam/ajjawam-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment is a warehouse-to-store dispatch. Warehouse stock is debited at
// creation; Deliver credits the store, Cancel restores the warehouse. Cancel
// is never allowed after Delivered.
type Assignment struct {
	ID               uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StoreID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"store_id"`
	Status           enum.AssignmentStatus `gorm:"default:0" json:"status"`
	DispatchDateTime *time.Time            `json:"dispatch_date_time,omitempty"`
	DeliveredAt      *time.Time            `json:"delivered_at,omitempty"`
	CanceledAt       *time.Time            `json:"canceled_at,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`

	// Relationships
	Store Store            `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items []AssignmentItem `gorm:"foreignKey:AssignmentID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assignment
func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Assignment model
func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentItem is one product+quantity pair of an assignment
type AssignmentItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AssignmentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"assignment_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	AssignQuantity int       `gorm:"not null" json:"assign_quantity"`
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Assignment Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
	Product    Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assignment item
func (ai *AssignmentItem) BeforeCreate(tx *gorm.DB) error {
	if ai.ID == uuid.Nil {
		ai.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AssignmentItem model
func (AssignmentItem) TableName() string {
	return "assignment_items"
}
