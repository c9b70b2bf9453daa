package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is one persisted ERROR+ record. Request-scoped attributes get
// their own columns; anything else lands in Extra.
type SystemLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Level      string         `gorm:"size:10;not null;index" json:"level"`
	Message    string         `gorm:"type:text" json:"message"`
	RequestID  string         `gorm:"size:64;index" json:"request_id"`
	UserID     *string        `gorm:"size:36;index" json:"user_id"`
	Role       Role           `gorm:"size:20" json:"role"`
	Action     string         `gorm:"size:100" json:"action"`
	Path       string         `gorm:"size:255" json:"path"`
	StatusCode int            `json:"status_code"`
	TemplateID *string        `gorm:"size:36;index" json:"template_id"`
	Error      string         `gorm:"type:text" json:"error"`
	LatencyMs  int            `json:"latency_ms"`
	Extra      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt  time.Time      `json:"created_at"`
}
