package dto

import (
	"time"

	"github.com/google/uuid"
)

// TemplateRef accepts both template_id and templateId.
type TemplateRef struct {
	TemplateID      string `json:"template_id"`
	TemplateIDCamel string `json:"templateId"`
}

func (r TemplateRef) ID() string {
	if r.TemplateID != "" {
		return r.TemplateID
	}
	return r.TemplateIDCamel
}

type AddToCartRequest struct {
	TemplateRef
}

// PurchaseRequest carries only the template. Client-side amounts are never read.
type PurchaseRequest struct {
	TemplateRef
}

type DownloadRequest struct {
	TemplateRef
}

type CartItemResponse struct {
	ID         uuid.UUID         `json:"id"`
	TemplateID uuid.UUID         `json:"template_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Template   *TemplateResponse `json:"template,omitempty"`
}

type PurchaseResponse struct {
	ID         uuid.UUID         `json:"id"`
	TemplateID uuid.UUID         `json:"template_id"`
	Amount     int64             `json:"amount"`
	CreatedAt  time.Time         `json:"created_at"`
	Template   *TemplateResponse `json:"template,omitempty"`
}

type DownloadResponse struct {
	ID         uuid.UUID         `json:"id"`
	TemplateID uuid.UUID         `json:"template_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Template   *TemplateResponse `json:"template,omitempty"`
}

type DownloadLinkResponse struct {
	CanvaLink string `json:"canva_link"`
}

type AdminSummaryResponse struct {
	TemplateCount int64 `json:"templateCount"`
	UserCount     int64 `json:"userCount"`
	Revenue       int64 `json:"revenue"`
}
