package metrics_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maheshrc27/contentplanner/internal/metrics"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		"ok":               nil,
		"already_resolved": fmt.Errorf("approval a1: %w", models.ErrAlreadyResolved),
		"invalid_state":    models.InvalidStateError("post is published"),
		"not_found":        models.NotFoundError("approval", "a1"),
		"validation":       &models.ValidationError{Field: "feedback", Message: "required"},
		"error":            errors.New("connection reset"),
	}
	for want, err := range cases {
		require.Equal(t, want, metrics.Outcome(err))
	}
}
