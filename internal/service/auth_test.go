package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/errors"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Asha Patel",
		Email:    "asha@campus.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.User.ID)
	assert.True(t, strings.HasPrefix(resp.User.ID, "usr-"))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Positive(t, resp.ExpiresIn)

	// Password never stored in the clear.
	stored, err := env.store.Users.Get(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.NotEmpty(t, stored.RefreshTokenHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Asha Patel", "asha@campus.edu")

	_, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Imposter",
		Email:    "ASHA@campus.edu", // case-insensitive match
		Password: "another password",
	})
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestRegister_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Name:     "A",
		Email:    "nope",
		Password: "short",
	})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "Asha Patel", "asha@campus.edu")

	resp, err := env.auth.Login(ctx, LoginRequest{
		Email:    "asha@campus.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "Asha Patel", "asha@campus.edu")

	_, err := env.auth.Login(context.Background(), LoginRequest{
		Email:    "asha@campus.edu",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "whatever password",
	})
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Asha Patel",
		Email:    "asha@campus.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old token no longer works.
	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	// The new one does.
	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestRefresh_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Refresh(context.Background(), RefreshRequest{RefreshToken: "bogus"})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, RegisterRequest{
		Name:     "Asha Patel",
		Email:    "asha@campus.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, reg.User.ID))

	_, err = env.auth.Refresh(ctx, RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestVerifyAccessToken(t *testing.T) {
	env := newTestEnv(t)

	reg, err := env.auth.Register(context.Background(), RegisterRequest{
		Name:     "Asha Patel",
		Email:    "asha@campus.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	claims, err := env.auth.VerifyAccessToken(reg.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = env.auth.VerifyAccessToken("not a token")
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}
