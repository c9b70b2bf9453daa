// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthzDecisions counts gate decisions by operation, caller role and outcome
	// (allow, unauthenticated, forbidden, not_found).
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "temply_authz_decisions_total",
			Help: "Authorization gate decisions",
		},
		[]string{"operation", "role", "decision"},
	)

	// IdentityLookups counts identity provider calls by provider and result.
	IdentityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "temply_identity_lookups_total",
			Help: "Identity provider lookups",
		},
		[]string{"provider", "result"},
	)

	// ProviderBreakerState is 0 closed, 1 half-open, 2 open.
	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "temply_identity_breaker_state",
			Help: "Identity provider circuit breaker state",
		},
		[]string{"provider"},
	)
)
