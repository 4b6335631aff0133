package machinery

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Machine is a tracked piece of equipment.
type Machine struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string         `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Category      string         `gorm:"size:100" json:"category,omitempty"`
	AcquisitionAt *time.Time     `json:"acquisition_at,omitempty"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MachineDocument is a legal or technical document attached to a machine
// (insurance policy, inspection certificate, operating permit). Documents with
// an expiry feed the expiring-documents report.
type MachineDocument struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MachineID uuid.UUID      `gorm:"type:uuid;not null;index" json:"machine_id"`
	Kind      string         `gorm:"size:50;not null" json:"kind"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	IssuedAt  time.Time      `gorm:"not null" json:"issued_at"`
	ExpiresAt *time.Time     `gorm:"index" json:"expires_at,omitempty"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Machine   Machine        `gorm:"foreignKey:MachineID" json:"-"`
}

type CreateMachineRequest struct {
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	AcquisitionAt *time.Time `json:"acquisition_at"`
}

type UpdateMachineRequest struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Active   *bool   `json:"active"`
}

type AddDocumentRequest struct {
	Kind      string                 `json:"kind"`
	Title     string                 `json:"title"`
	IssuedAt  time.Time              `json:"issued_at"`
	ExpiresAt *time.Time             `json:"expires_at"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
