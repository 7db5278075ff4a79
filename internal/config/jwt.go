package config

import (
	"fmt"
)

// DefaultJWTExpirationHours is used when the server config sets no expiry
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for API token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a JWT configuration. Zero hours selects the default.
func NewJWTConfig(secret string, expirationHours int) (*JWTConfig, error) {
	if expirationHours == 0 {
		expirationHours = DefaultJWTExpirationHours
	}
	cfg := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
		Issuer:          "cvgen",
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JWT returns the token configuration for the API, or nil when no secret is
// configured and the API is open.
func (s ServerConfig) JWT() (*JWTConfig, error) {
	if s.JWTSecret == "" {
		return nil, nil
	}
	return NewJWTConfig(s.JWTSecret, s.JWTExpirationHours)
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters, got: %d", len(c.Secret))
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("jwt expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
