package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TemplateStatus string

const (
	StatusPending  TemplateStatus = "PENDING"
	StatusApproved TemplateStatus = "APPROVED"
	StatusRejected TemplateStatus = "REJECTED"
)

// ParseTemplateStatus returns false for unknown values.
func ParseTemplateStatus(s string) (TemplateStatus, bool) {
	switch TemplateStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return TemplateStatus(s), true
	}
	return "", false
}

// CanTransition reports whether a moderation decision may move a template from one status to another.
// PENDING is the only non-terminal status.
func CanTransition(from, to TemplateStatus) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

type Template struct {
	ID             uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string                      `gorm:"size:200;not null" json:"title"`
	Description    string                      `gorm:"type:text" json:"description"`
	Price          int64                       `gorm:"not null;default:0;check:chk_templates_price,price >= 0" json:"price"`
	ThumbnailURL   string                      `gorm:"type:text" json:"thumbnail_url"`
	PreviewImages  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"preview_images"`
	CanvaLink      string                      `gorm:"type:text" json:"-"`
	Category       string                      `gorm:"size:100;index" json:"category"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Status         TemplateStatus              `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatorID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"creator_id"`
	DownloadsCount int64                       `gorm:"not null;default:0" json:"downloads_count"`
	ViewsCount     int64                       `gorm:"not null;default:0" json:"views_count"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`
	Creator        *User                       `gorm:"foreignKey:CreatorID" json:"-"`
}

// OwnedBy reports whether userID is the template's creator.
func (t *Template) OwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && t.CreatorID == userID
}
