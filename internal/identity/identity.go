// Package identity turns a bearer credential into a verified identity and an
// effective marketplace role.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/models"
)

// ErrUnauthenticated is returned by providers for missing, malformed, expired or rejected credentials.
var ErrUnauthenticated = apperr.Unauthenticated(apperr.MsgInvalidCredential)

// Identity is a verified caller. RoleClaim is RoleNone when the token carries no role.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Name      string
	RoleClaim models.Role
}

// Provider exchanges a credential for an identity. Implementations do not retry.
type Provider interface {
	GetUser(ctx context.Context, token string) (*Identity, error)
}

const bearerScheme = "bearer "

// ExtractToken returns the credential from an Authorization header of the form
// "Bearer <token>" (scheme matched case-insensitively), falling back to the
// access-token cookie value. The boolean is false when neither source has one.
func ExtractToken(authorization, cookie string) (string, bool) {
	h := strings.TrimSpace(authorization)
	if len(h) > len(bearerScheme) && strings.EqualFold(h[:len(bearerScheme)], bearerScheme) {
		if token := strings.TrimSpace(h[len(bearerScheme):]); token != "" {
			return token, true
		}
	}
	if token := strings.TrimSpace(cookie); token != "" {
		return token, true
	}
	return "", false
}
