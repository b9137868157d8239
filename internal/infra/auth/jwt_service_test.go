package auth

import (
	"testing"
	"time"

	"novacommerce/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_SignAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	token, err := jwtService.Sign(userID, "john@example.com", "CUSTOMER")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims)

	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := jwtService.Validate("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	otherCfg := newTestJWTConfig()
	otherCfg.SecretKey.Access = "a_completely_different_secret_key_here"
	otherService, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := jwtService.Sign(uuid.New(), "john@example.com", "CUSTOMER")
	require.NoError(t, err)

	claims, err := otherService.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute
	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := jwtService.Sign(uuid.New(), "john@example.com", "CUSTOMER")
	require.NoError(t, err)

	claims, err := jwtService.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_AccessTokenTTL(t *testing.T) {
	jwtService, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, time.Hour, jwtService.AccessTokenTTL())
}
