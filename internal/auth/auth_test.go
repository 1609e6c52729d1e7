package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Invalid(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("x", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTokenService(t *testing.T) *TokenService {
	t.Helper()

	keyHex, err := GenerateKey()
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTokenService(t)

	user := &domain.User{Name: "Asha", Email: "asha@campus.edu"}
	user.ID = "usr-1"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "asha@campus.edu", claims.Email)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	keyHex, err := GenerateKey()
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, -time.Minute, time.Hour)
	require.NoError(t, err)

	user := &domain.User{Email: "asha@campus.edu"}
	user.ID = "usr-1"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongKey(t *testing.T) {
	svc1 := newTokenService(t)
	svc2 := newTokenService(t)

	user := &domain.User{Email: "asha@campus.edu"}
	user.ID = "usr-1"

	token, err := svc1.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc2.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenService_InvalidKey(t *testing.T) {
	_, err := NewTokenService("short", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("z", 64), time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	keyHex, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, keyHex, keyHexLength)

	// The generated key is valid token service material.
	_, err = NewTokenService(keyHex, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	// A second load returns the persisted key, not a new one.
	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, keyHex, again)
}

func TestLoadOrGenerateKey_RejectsCorruptKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("too-short"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newTokenService(t)

	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	// Hashing is deterministic and hides the token value.
	assert.Equal(t, HashRefreshToken(token), HashRefreshToken(token))
	assert.NotEqual(t, token, HashRefreshToken(token))
}
