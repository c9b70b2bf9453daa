package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/identity"
	"github.com/temply-mn/temply-api/internal/models"
)

// JWTSecret is the signing secret shared by test tokens and test providers.
const JWTSecret = "temply-test-secret-0123456789abcdef"

// Token mints a Supabase-shaped access token for id. An empty role leaves the
// role claim out, so the role is looked up in the users table.
func Token(t *testing.T, id uuid.UUID, role models.Role) string {
	t.Helper()
	claims := identity.Claims{
		Email:        id.String()[:8] + "@example.mn",
		PostgresRole: "authenticated",
		UserMetadata: identity.Metadata{Name: "Test " + string(role), Role: string(role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return signed
}
