package tokengenerator

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	js := NewJwtService("test-secret", WithIssuer("verificationapp"))

	userView := map[string]interface{}{
		"id":    "b2f3a1f0-0000-0000-0000-000000000001",
		"email": "user@example.com",
	}

	tokenStr, expiresAt, err := js.GenerateToken("b2f3a1f0-0000-0000-0000-000000000001", userView)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	assert.WithinDuration(t, time.Now().UTC().Add(DefaultBearerTokenExpiry), expiresAt, time.Minute)

	token, err := js.ParseToken(tokenStr)
	require.NoError(t, err)

	claims, ok := token.Claims.(*Claims)
	require.True(t, ok)
	assert.Equal(t, "b2f3a1f0-0000-0000-0000-000000000001", claims.Subject)
	assert.Equal(t, "verificationapp", claims.Issuer)

	user, ok := claims.User.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user@example.com", user["email"])
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	js := NewJwtService("test-secret")
	other := NewJwtService("other-secret")

	tokenStr, _, err := js.GenerateToken("some-subject", nil)
	require.NoError(t, err)

	_, err = other.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestAuthVerifiesIssuedTokens(t *testing.T) {
	js := NewJwtService("test-secret")

	tokenStr, _, err := js.GenerateToken("some-subject", nil)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(js.Auth(), tokenStr)
	require.NoError(t, err)

	sub, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "some-subject", sub["sub"])
}

func TestCustomExpiry(t *testing.T) {
	js := NewJwtService("test-secret", WithExpiry(time.Hour))

	_, expiresAt, err := js.GenerateToken("some-subject", nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, time.Minute)
}
