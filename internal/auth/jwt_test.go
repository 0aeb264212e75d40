package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	assert.Error(t, err, "secrets shorter than 16 chars must be rejected")
}

func TestGenerateAndValidate(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ts.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.ErrorContains(t, err, "expired")
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	// Flip a character in the payload; the signature no longer matches.
	tampered := token[:len(token)/2] + "x" + token[len(token)/2+1:]
	_, err = ts.Validate(tampered)
	assert.Error(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("a-completely-different-secret!!")
	require.NoError(t, err)

	token, err := ts.Generate("user-123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	_, err := ts.Validate("not.a.jwt")
	assert.Error(t, err)
}
