package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores ERROR+ application log records for the admin panel.
type SystemLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"index" json:"timestamp"`
	Level     string         `gorm:"size:10" json:"level"`
	Message   string         `gorm:"size:1000" json:"message"`
	ActorID   *string        `gorm:"size:64;index" json:"actor_id,omitempty"`
	Route     string         `gorm:"size:255" json:"route,omitempty"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	LatencyMs int            `json:"latency_ms,omitempty"`
	Extra     datatypes.JSON `json:"extra,omitempty"`
}
