package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "planner.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("R2_BUCKET_NAME", "media")

	cfg, err := Parse()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "09:00", cfg.DefaultPublishAt)
	require.Equal(t, "@every 10m", cfg.PublishSweepSpec)
	require.Equal(t, 10, cfg.WorkerConcurrency)
	require.Equal(t, "media", cfg.R2.BucketName)
	require.Equal(t, "http://localhost:3000/login/callback", cfg.Google.RedirectURI)
}

func TestParseErrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "planner.db")
	t.Setenv("SECRET_KEY", "s3cret")

	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err := Parse()
	require.ErrorContains(t, err, "DATABASE_DRIVER")

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("WORKER_CONCURRENCY", "many")
	_, err = Parse()
	require.ErrorContains(t, err, "parse env:")
}
