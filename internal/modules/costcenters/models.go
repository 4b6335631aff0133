package costcenters

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostCenter groups expenses for project accounting.
type CostCenter struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string         `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	Budget      float64        `gorm:"not null;default:0" json:"budget"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type CreateCostCenterRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

type UpdateCostCenterRequest struct {
	Code        *string  `json:"code"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
	Active      *bool    `json:"active"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
