package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateTemplateRequest ignores any client status; new templates start PENDING.
type CreateTemplateRequest struct {
	Title         string   `json:"title" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	Price         *int64   `json:"price" validate:"required,min=0"`
	ThumbnailURL  string   `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewImages []string `json:"preview_images" validate:"max=10,dive,url"`
	CanvaLink     string   `json:"canva_link" validate:"required,url"`
	Category      string   `json:"category" validate:"required,max=64"`
	Tags          []string `json:"tags" validate:"max=20,dive,min=1,max=40"`
}

// UpdateTemplateRequest is a partial update. A non-nil Status makes it a
// moderation request; any other non-nil field makes it a content edit.
type UpdateTemplateRequest struct {
	Status        *string   `json:"status"`
	Title         *string   `json:"title" validate:"omitempty,min=2,max=200"`
	Description   *string   `json:"description" validate:"omitempty,max=5000"`
	Price         *int64    `json:"price" validate:"omitempty,min=0"`
	ThumbnailURL  *string   `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewImages *[]string `json:"preview_images" validate:"omitempty,max=10,dive,url"`
	CanvaLink     *string   `json:"canva_link" validate:"omitempty,url"`
	Category      *string   `json:"category" validate:"omitempty,min=1,max=64"`
	Tags          *[]string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
}

// Normalize trims the free-text fields. Call it before validating so that
// whitespace-only values fail the length rules.
func (r *CreateTemplateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ThumbnailURL = strings.TrimSpace(r.ThumbnailURL)
	r.CanvaLink = strings.TrimSpace(r.CanvaLink)
	r.Category = strings.TrimSpace(r.Category)
}

// Normalize trims the free-text fields that are present.
func (r *UpdateTemplateRequest) Normalize() {
	for _, s := range []*string{r.Title, r.Description, r.ThumbnailURL, r.CanvaLink, r.Category} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

// HasContent reports whether any non-status field is present.
func (r *UpdateTemplateRequest) HasContent() bool {
	return r.Title != nil || r.Description != nil || r.Price != nil || r.ThumbnailURL != nil ||
		r.PreviewImages != nil || r.CanvaLink != nil || r.Category != nil || r.Tags != nil
}

type TemplateResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	PreviewImages  []string  `json:"preview_images"`
	CanvaLink      string    `json:"canva_link,omitempty"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	CreatorID      uuid.UUID `json:"creator_id"`
	CreatorName    string    `json:"creator_name,omitempty"`
	DownloadsCount int64     `json:"downloads_count"`
	ViewsCount     int64     `json:"views_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TemplateDetailResponse struct {
	TemplateResponse
	RelatedTemplates []TemplateResponse `json:"related_templates"`
	Purchased        bool               `json:"purchased"`
}
