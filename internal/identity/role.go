package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
)

// RoleLookup reads the stored role column for a user id.
type RoleLookup interface {
	RoleByID(ctx context.Context, id uuid.UUID) (models.Role, error)
}

// RoleResolver picks the effective role: the token's role claim when present,
// otherwise the users table. An identity with neither has RoleNone.
type RoleResolver struct {
	users RoleLookup
}

func NewRoleResolver(users RoleLookup) *RoleResolver {
	return &RoleResolver{users: users}
}

func (r *RoleResolver) Resolve(ctx context.Context, ident *Identity) (models.Role, error) {
	if ident == nil {
		return models.RoleNone, nil
	}
	if ident.RoleClaim != models.RoleNone {
		return ident.RoleClaim, nil
	}

	role, err := r.users.RoleByID(ctx, ident.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, apperr.Internal(err)
	}
	return role, nil
}
