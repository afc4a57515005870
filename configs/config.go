package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type R2 struct {
	AccountID  string `env:"ACCOUNT_ID"`
	AccessKey  string `env:"ACCESS_KEY"`
	SecretKey  string `env:"SECRET_KEY"`
	BucketName string `env:"BUCKET_NAME"`
	PublicURL  string `env:"PUBLIC_URL"`
}

type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI" envDefault:"http://localhost:3000/login/callback"`
}

type Config struct {
	Port              string `env:"PORT" envDefault:"3000"`
	DatabaseDriver    string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL       string `env:"DATABASE_URL"`
	RedisURI          string `env:"REDIS_URI" envDefault:"localhost:6379"`
	FrontendURL       string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	SecretKey         string `env:"SECRET_KEY"`
	CookieName        string `env:"COOKIE_NAME" envDefault:"planner_session"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	DefaultPublishAt  string `env:"DEFAULT_PUBLISH_TIME" envDefault:"09:00"`
	PublishSweepSpec  string `env:"PUBLISH_SWEEP_SPEC" envDefault:"@every 10m"`
	WorkerConcurrency int    `env:"WORKER_CONCURRENCY" envDefault:"10"`
	Google            Google `envPrefix:"GOOGLE_"`
	R2                R2     `envPrefix:"R2_"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.WorkerConcurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.WorkerConcurrency)
	}
	return nil
}
