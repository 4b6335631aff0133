package quotations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation statuses. Transitions: draft -> sent -> approved | rejected.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Quotation is a supplier price offer tied to a cost center.
type Quotation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Number       string         `gorm:"size:50;not null;uniqueIndex" json:"number"`
	SupplierID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CostCenterID uuid.UUID      `gorm:"type:uuid;not null;index" json:"cost_center_id"`
	Status       string         `gorm:"size:20;not null;default:'draft'" json:"status"`
	Currency     string         `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Total        float64        `gorm:"not null;default:0" json:"total"`
	Items        datatypes.JSON `json:"items,omitempty"`
	Notes        string         `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// LineItem is one row of a quotation, stored inside the Items JSON column.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateQuotationRequest struct {
	Number       string     `json:"number"`
	SupplierID   uuid.UUID  `json:"supplier_id"`
	CostCenterID uuid.UUID  `json:"cost_center_id"`
	Currency     string     `json:"currency"`
	Items        []LineItem `json:"items"`
	Notes        string     `json:"notes"`
}

type UpdateQuotationRequest struct {
	Items *[]LineItem `json:"items"`
	Notes *string     `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type QuotationListResponse struct {
	Data       []Quotation `json:"data"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int64       `json:"total_count"`
	TotalPages int         `json:"total_pages"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
