// Package config loads server configuration from environment variables.
//
// Configuration lives in one struct so main.go reads it in a single call and
// the rest of the app receives plain values through constructors — no package
// reaches for os.Getenv on its own.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, parsed from the environment by
// Load. envDefault values make a bare `go run ./cmd/server` work for local
// development; production deployments set everything explicitly.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/facfolio.db"`

	// BaseURL is the externally reachable origin, used to build the OAuth
	// callback URL and the public portfolio URLs.
	BaseURL string `env:"BASE_URL"`

	// JWTSecret signs session tokens. If unset, authentication routes are not
	// registered and the server runs read-only.
	JWTSecret string `env:"JWT_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = cfg.BaseURL + "/auth/google/callback"
	}

	return cfg, nil
}

// OAuthEnabled reports whether the Google login flow can be wired.
func (c Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
