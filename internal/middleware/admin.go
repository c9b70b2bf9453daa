package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/temply-mn/temply-api/internal/authz"
)

// AdminRequired guards back-office routes. The role comes from the principal
// Authenticate stored, which already fell back to the users table when the
// token carried no role.
func AdminRequired(gate *authz.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.RequireAdmin(PrincipalFrom(c)); err != nil {
			return err
		}
		return c.Next()
	}
}
