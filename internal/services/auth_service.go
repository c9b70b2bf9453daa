package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/temply-mn/temply-api/internal/apperr"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/config"
	"github.com/temply-mn/temply-api/internal/dto"
	"github.com/temply-mn/temply-api/internal/models"
	"github.com/temply-mn/temply-api/internal/repository"
	"github.com/temply-mn/temply-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for local accounts.
type TokenIssuer interface {
	Issue(user *models.User, issuer string, ttl time.Duration) (string, time.Time, error)
}

type AuthService struct {
	users  UserStore
	issuer TokenIssuer
	gate   *authz.Gate
	cfg    *config.Config
}

func NewAuthService(users UserStore, issuer TokenIssuer, gate *authz.Gate, cfg *config.Config) *AuthService {
	return &AuthService{users: users, issuer: issuer, gate: gate, cfg: cfg}
}

// Register creates a local account. Only USER and CREATOR are self-assignable.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !s.cfg.LocalAuthEnabled {
		return nil, apperr.Forbidden(apperr.MsgLocalAuthDisabled)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if weakPassword(req.Password) {
		return nil, apperr.Validation(apperr.MsgWeakPassword)
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation(apperr.MsgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation(apperr.MsgEmailTaken)
		}
		return nil, apperr.Internal(err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.tokenResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if !s.cfg.LocalAuthEnabled {
		return nil, apperr.Forbidden(apperr.MsgLocalAuthDisabled)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperr.Validation(apperr.MsgEmailPasswordNeeded)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthenticated(apperr.MsgWrongEmailPassword)
		}
		return nil, apperr.Internal(err)
	}
	if user.PasswordHash == "" {
		return nil, apperr.Unauthenticated(apperr.MsgWrongEmailPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated(apperr.MsgWrongEmailPassword)
	}

	return s.tokenResponse(user)
}

// Me describes the caller. Identities without a users row are described from
// their token.
func (s *AuthService) Me(ctx context.Context, p authz.Principal) (*dto.UserResponse, error) {
	if err := s.gate.RequireIdentity(p); err != nil {
		return nil, err
	}

	resp := &dto.UserResponse{ID: p.UserID, Email: p.Email, Name: p.Name, Role: string(p.Role)}
	user, err := s.users.FindByID(ctx, p.UserID)
	switch {
	case err == nil:
		resp.Email = user.Email
		if resp.Name == "" {
			resp.Name = user.Name
		}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Internal(err)
	}
	return resp, nil
}

func (s *AuthService) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expires, err := s.issuer.Issue(user, s.cfg.JWTIssuer, s.cfg.JWTAccessExpiry)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expires,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	}, nil
}

// weakPassword reports a password without both a letter and a digit.
func weakPassword(pw string) bool {
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return !letter || !digit
}
