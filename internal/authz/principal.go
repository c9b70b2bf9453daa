package authz

import (
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
)

// Principal is the caller as seen by the gate. Role is RoleNone for anonymous
// callers and for identities without a resolvable role.
type Principal struct {
	UserID        uuid.UUID
	Email         string
	Name          string
	Role          models.Role
	Authenticated bool
}

// Anonymous returns the principal for a request without a usable credential.
func Anonymous() Principal {
	return Principal{Role: models.RoleNone}
}

func (p Principal) owns(t *models.Template) bool {
	return p.Authenticated && t != nil && t.OwnedBy(p.UserID)
}

func (p Principal) roleLabel() string {
	if p.Role == models.RoleNone {
		return "none"
	}
	return string(p.Role)
}
