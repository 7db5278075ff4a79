package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvgen/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(t *testing.T, expirationHours int) *JWTService {
	cfg, err := config.NewJWTConfig(testSecret, expirationHours)
	require.NoError(t, err)
	return NewJWTService(cfg)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("ci-pipeline", 0)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-pipeline", claims.ClientName())
	assert.Equal(t, "cvgen", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_CustomTTL(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("short-lived", time.Hour)
	require.NoError(t, err)
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RequiresClient(t *testing.T) {
	_, err := setupTestJWTService(t, 1).GenerateToken("  ", 0)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	service := setupTestJWTService(t, 1)
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := service.GenerateToken("old", 0)
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := setupTestJWTService(t, 1).GenerateToken("client", 0)
	require.NoError(t, err)

	cfg, err := config.NewJWTConfig("another-secret-key-entirely", 1)
	require.NoError(t, err)
	_, err = NewJWTService(cfg).ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	service := setupTestJWTService(t, 1)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "client",
		Issuer:    "cvgen",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.ValidateToken(none)
	assert.Error(t, err)
}

func TestJWTService_Malformed(t *testing.T) {
	service := setupTestJWTService(t, 1)

	_, err := service.ValidateToken("")
	assert.Error(t, err)

	_, err = service.ValidateToken("not.a.valid.jwt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed token")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	token, err := service.GenerateToken("dashboard", 0)
	require.NoError(t, err)

	principal, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", principal.ClientName())
}
