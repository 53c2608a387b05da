package utils

import (
	"testing"
	"time"

	"leadpilot/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtract(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("agent-1", "dana@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", sub)
}

func TestExtract_ExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("agent-1", "dana@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestExtract_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken("agent-1", "dana@example.com", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret"
	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("other-token"))
}
