package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/models"
)

const testSecret = "test-secret-with-enough-entropy-123456"

func sign(t *testing.T, secret string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(sub uuid.UUID, role string) Claims {
	return Claims{
		Email:        "bat@example.mn",
		PostgresRole: "authenticated",
		UserMetadata: Metadata{Name: "Бат", Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestJWTProviderGetUser(t *testing.T) {
	p := NewJWTProvider(testSecret)
	id := uuid.New()

	ident, err := p.GetUser(context.Background(), sign(t, testSecret, jwt.SigningMethodHS256, validClaims(id, "creator")))
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if ident.ID != id || ident.Email != "bat@example.mn" || ident.Name != "Бат" {
		t.Errorf("unexpected identity %+v", ident)
	}
	if ident.RoleClaim != models.RoleCreator {
		t.Errorf("RoleClaim = %q, want CREATOR", ident.RoleClaim)
	}
}

func TestJWTProviderIgnoresPostgresRole(t *testing.T) {
	p := NewJWTProvider(testSecret)
	ident, err := p.GetUser(context.Background(), sign(t, testSecret, jwt.SigningMethodHS256, validClaims(uuid.New(), "")))
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if ident.RoleClaim != models.RoleNone {
		t.Errorf("RoleClaim = %q, want none", ident.RoleClaim)
	}
}

func TestJWTProviderRejects(t *testing.T) {
	p := NewJWTProvider(testSecret)

	expired := validClaims(uuid.New(), "USER")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims(uuid.New(), "USER")
	noExpiry.ExpiresAt = nil

	badSubject := validClaims(uuid.New(), "USER")
	badSubject.Subject = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", sign(t, "another-secret", jwt.SigningMethodHS256, validClaims(uuid.New(), "USER"))},
		{"wrong algorithm", sign(t, testSecret, jwt.SigningMethodHS512, validClaims(uuid.New(), "USER"))},
		{"expired", sign(t, testSecret, jwt.SigningMethodHS256, expired)},
		{"missing expiry", sign(t, testSecret, jwt.SigningMethodHS256, noExpiry)},
		{"bad subject", sign(t, testSecret, jwt.SigningMethodHS256, badSubject)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.GetUser(context.Background(), tt.token)
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("err = %v, want ErrUnauthenticated", err)
			}
			if apperr.KindOf(err) != apperr.KindUnauthenticated {
				t.Errorf("kind = %v, want unauthenticated", apperr.KindOf(err))
			}
		})
	}
}

func TestJWTProviderIssueRoundTrip(t *testing.T) {
	p := NewJWTProvider(testSecret)
	user := &models.User{ID: uuid.New(), Email: "saraa@example.mn", Name: "Сараа", Role: models.RoleAdmin}

	token, expires, err := p.Issue(user, "temply", 15*time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v is not in the future", expires)
	}

	ident, err := p.GetUser(context.Background(), token)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if ident.ID != user.ID || ident.RoleClaim != models.RoleAdmin || ident.Name != user.Name {
		t.Errorf("round trip mismatch: %+v", ident)
	}
}
