package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/temply-mn/temply-api/internal/models"
)

// Metadata is the user_metadata object Supabase embeds in its access tokens.
type Metadata struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Claims follows the Supabase access token layout. The top-level "role" claim is
// the Postgres role ("authenticated") and never a marketplace role.
type Claims struct {
	Email        string   `json:"email,omitempty"`
	PostgresRole string   `json:"role,omitempty"`
	UserMetadata Metadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 tokens signed with the project's JWT secret.
type JWTProvider struct {
	secret []byte
	parser *jwt.Parser
	now    func() time.Time
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		now: time.Now,
	}
}

func (p *JWTProvider) GetUser(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var claims Claims
	parsed, err := p.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthenticated)
	}

	role, _ := models.ParseRole(strings.ToUpper(claims.UserMetadata.Role))
	return &Identity{
		ID:        id,
		Email:     claims.Email,
		Name:      claims.UserMetadata.Name,
		RoleClaim: role,
	}, nil
}

// Issue signs an access token for a locally registered user in the same layout
// Supabase uses, so JWTProvider verifies both kinds.
func (p *JWTProvider) Issue(user *models.User, issuer string, ttl time.Duration) (string, time.Time, error) {
	now := p.now()
	expires := now.Add(ttl)
	claims := Claims{
		Email:        user.Email,
		PostgresRole: "authenticated",
		UserMetadata: Metadata{Name: user.Name, Role: string(user.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{"authenticated"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expires, nil
}
