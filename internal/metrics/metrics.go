// Package metrics declares the prometheus collectors of the planner.
package metrics

import (
	"errors"
	"time"

	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	approvalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contentplanner_approval_transitions_total",
		Help: "Approval workflow actions by outcome.",
	}, []string{"action", "outcome"})

	postsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contentplanner_posts_published_total",
		Help: "Posts moved from scheduled to published.",
	})

	monthViewDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contentplanner_month_view_seconds",
		Help:    "Time spent loading and building a month view.",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveApproval counts one workflow action ("submit", "approve", "reject").
func ObserveApproval(action string, err error) {
	approvalTransitions.WithLabelValues(action, Outcome(err)).Inc()
}

func ObservePublished() {
	postsPublished.Inc()
}

func ObserveMonthView(started time.Time) {
	monthViewDuration.Observe(time.Since(started).Seconds())
}

// Outcome maps an error onto a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrAlreadyResolved):
		return "already_resolved"
	case errors.Is(err, models.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
