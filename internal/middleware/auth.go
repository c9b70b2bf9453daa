package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/identity"
)

// Locals keys set by Authenticate.
const (
	LocalPrincipal = "principal"
	LocalAuthError = "auth_error"
	LocalUserID    = "user_id"
)

// Authenticate resolves the caller on every request. Requests without a
// credential, or with one the provider rejects, continue as anonymous; the
// rejection is kept so an endpoint that needs an identity can say why. Only a
// failed role lookup stops the request.
func Authenticate(provider identity.Provider, roles *identity.RoleResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalPrincipal, authz.Anonymous())

		token, ok := identity.ExtractToken(c.Get(fiber.HeaderAuthorization), c.Cookies(cookieName))
		if !ok {
			return c.Next()
		}

		ident, err := provider.GetUser(c.UserContext(), token)
		if err != nil {
			slog.Debug("credential rejected", "path", c.Path(), "error", err)
			c.Locals(LocalAuthError, err)
			return c.Next()
		}

		role, err := roles.Resolve(c.UserContext(), ident)
		if err != nil {
			return err
		}

		c.Locals(LocalUserID, ident.ID.String())
		c.Locals(LocalPrincipal, authz.Principal{
			UserID:        ident.ID,
			Email:         ident.Email,
			Name:          ident.Name,
			Role:          role,
			Authenticated: true,
		})
		return c.Next()
	}
}

// PrincipalFrom returns the caller resolved by Authenticate, or an anonymous
// principal when the middleware did not run.
func PrincipalFrom(c *fiber.Ctx) authz.Principal {
	if p, ok := c.Locals(LocalPrincipal).(authz.Principal); ok {
		return p
	}
	return authz.Anonymous()
}

// AuthErrorFrom returns the provider's rejection of the request credential, if any.
func AuthErrorFrom(c *fiber.Ctx) error {
	err, _ := c.Locals(LocalAuthError).(error)
	return err
}
