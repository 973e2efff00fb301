package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module. It is loaded once at
// startup and treated as immutable for the process lifetime; components
// receive it at construction, never from ambient state at call time.
type Config struct {
	// Database configuration
	DatabaseURL string `env:"DATABASE_URL,required"`

	// JWT configuration. The access token TTL is deliberately shorter than
	// the session TTL: the token limits the exposure window of a stolen
	// credential, the session row is the revocation point.
	JWTSecretKey          string `env:"JWT_SECRET_KEY,required"`
	JWTAlgorithm          string `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTIssuer             string `env:"JWT_ISSUER" envDefault:"session-auth"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"15"`

	// Session configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// AccessTokenTTL returns the configured token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

// LoadConfig loads configuration from environment variables and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if cfg.AccessTokenTTLMinutes <= 0 {
		return nil, errors.New("access token TTL must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}

	return cfg, nil
}
