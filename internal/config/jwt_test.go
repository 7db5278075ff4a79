package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	cfg, err := NewJWTConfig("test-secret-key-0123", 0)
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key-0123", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, "cvgen", cfg.Issuer)
}

func TestNewJWTConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		hours  int
		errMsg string
	}{
		{"empty secret", "", 1, "cannot be empty"},
		{"short secret", "short", 1, "at least 16 characters"},
		{"negative expiration", "test-secret-key-0123", -1, "at least 1 hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJWTConfig(tt.secret, tt.hours)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestServerConfig_JWT(t *testing.T) {
	cfg, err := ServerConfig{}.JWT()
	require.NoError(t, err)
	assert.Nil(t, cfg, "no secret leaves the API open")

	cfg, err = ServerConfig{JWTSecret: "test-secret-key-0123", JWTExpirationHours: 12}.JWT()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 12, cfg.ExpirationHours)

	_, err = ServerConfig{JWTSecret: "short"}.JWT()
	assert.Error(t, err)
}
