package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSecretProductionRequiresExplicitSecret(t *testing.T) {
	var cfg Config
	cfg.Environment = "production"

	_, err := cfg.ResolveSecret()
	require.Error(t, err)

	cfg.Auth.JWTSecret = "prod-secret"
	secret, err := cfg.ResolveSecret()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", secret)
}

func TestResolveSecretDevelopmentFallsBack(t *testing.T) {
	var cfg Config
	cfg.Environment = "development"

	secret, err := cfg.ResolveSecret()
	require.NoError(t, err)
	assert.Equal(t, devFallbackSecret, secret)

	cfg.Auth.JWTSecret = "my-secret"
	secret, err = cfg.ResolveSecret()
	require.NoError(t, err)
	assert.Equal(t, "my-secret", secret)
}
