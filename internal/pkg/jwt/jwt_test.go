package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("importer")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	clientID, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "importer", clientID)
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"client_id": "importer",
		"type":      "refresh",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateRejectsBadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret-key", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("importer")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret-key", "1h")

	token, _, err := svc.GenerateAccessToken("importer")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}
