// Package metrics exposes Prometheus collectors for kitchen API traffic and
// reconciliation outcomes. A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests      *prometheus.CounterVec
	outcomes      *prometheus.CounterVec
	staleSearches prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Name:      "kitchen_api_requests_total",
			Help:      "Kitchen API requests by operation and result.",
		}, []string{"operation", "result"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Name:      "reconciliation_outcomes_total",
			Help:      "Pantry and shopping-list transitions by outcome.",
		}, []string{"transition", "outcome"}),
		staleSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Name:      "ingredient_search_stale_total",
			Help:      "Ingredient search responses discarded because a newer query was issued.",
		}),
	}
	reg.MustRegister(m.requests, m.outcomes, m.staleSearches)
	return m
}

// ObserveRequest counts one kitchen API call
func (m *Metrics) ObserveRequest(operation string, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, Result(err)).Inc()
}

// ObserveOutcome counts one reconciliation transition
func (m *Metrics) ObserveOutcome(transition, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(transition, outcome).Inc()
}

// ObserveStaleSearch counts a discarded out-of-order search response
func (m *Metrics) ObserveStaleSearch() {
	if m == nil {
		return
	}
	m.staleSearches.Inc()
}

// Result maps an error to its taxonomy label
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrPartialSuccess):
		return "partial"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRequest):
		return "validation"
	default:
		return "transient"
	}
}
