package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/temply-mn/temply-api/internal/metrics"
	"github.com/temply-mn/temply-api/internal/models"
)

const supabaseProviderName = "supabase"

// errRejected marks a credential the provider answered for but refused. It does
// not count against the circuit breaker.
var errRejected = errors.New("credential rejected by provider")

type supabaseUser struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	UserMetadata Metadata `json:"user_metadata"`
}

// SupabaseProvider resolves tokens with GET /auth/v1/user on Supabase Auth.
// Provider outages and an open breaker surface as ErrUnauthenticated; the
// caller re-issues the whole request.
type SupabaseProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[*Identity]
}

func NewSupabaseProvider(baseURL, apiKey string, timeout time.Duration) *SupabaseProvider {
	metrics.ProviderBreakerState.WithLabelValues(supabaseProviderName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Identity](gobreaker.Settings{
		Name:        "supabase-auth",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("identity provider breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			metrics.ProviderBreakerState.WithLabelValues(supabaseProviderName).Set(float64(to))
		},
	})

	return &SupabaseProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		cb:      cb,
	}
}

func (p *SupabaseProvider) GetUser(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	ident, err := p.cb.Execute(func() (*Identity, error) {
		return p.fetchUser(ctx, token)
	})
	if err != nil {
		result := "error"
		if errors.Is(err, errRejected) {
			result = "rejected"
		} else if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "breaker_open"
		}
		metrics.IdentityLookups.WithLabelValues(supabaseProviderName, result).Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	metrics.IdentityLookups.WithLabelValues(supabaseProviderName, "ok").Inc()
	return ident, nil
}

func (p *SupabaseProvider) fetchUser(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase auth request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, errRejected
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("supabase auth returned status %d", resp.StatusCode)
	}

	var u supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to decode supabase user: %w", err)
	}

	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, errRejected
	}

	role, _ := models.ParseRole(strings.ToUpper(u.UserMetadata.Role))
	return &Identity{
		ID:        id,
		Email:     u.Email,
		Name:      u.UserMetadata.Name,
		RoleClaim: role,
	}, nil
}
