package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a marketplace role. The zero value means no role could be resolved.
type Role string

const (
	RoleNone    Role = ""
	RoleUser    Role = "USER"
	RoleCreator Role = "CREATOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole accepts only the three known roles; anything else is RoleNone.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleCreator, RoleAdmin:
		return Role(s), true
	}
	return RoleNone, false
}

// User mirrors the public.users table. PasswordHash is empty for accounts managed by Supabase Auth.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:255" json:"name"`
	Role         Role      `gorm:"size:20;not null;default:'USER'" json:"role"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
