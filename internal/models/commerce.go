package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is unique per (user, template).
type CartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_template" json:"user_id"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_template" json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	Template   *Template `gorm:"foreignKey:TemplateID" json:"-"`
}

// Purchase records a completed transaction, at most one per (user, template).
// Amount is the template price at purchase time.
type Purchase struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_template" json:"user_id"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_template" json:"template_id"`
	Amount     int64     `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
	Template   *Template `gorm:"foreignKey:TemplateID" json:"-"`
}

// Download records a release of a purchased template's canva link.
type Download struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index" json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	Template   *Template `gorm:"foreignKey:TemplateID" json:"-"`
}
