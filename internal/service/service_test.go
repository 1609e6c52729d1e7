package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/events"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testEnv bundles the shared fixtures for service tests.
type testEnv struct {
	store *store.Store
	bus   *events.Bus
	auth  *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.New(t.TempDir(), nil, store.NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	bus := events.NewBus()
	t.Cleanup(bus.Close)

	return &testEnv{
		store: s,
		bus:   bus,
		auth:  NewAuthService(s, tokenService, nil),
	}
}

// registerUser creates a user through the auth service and returns it.
func (e *testEnv) registerUser(t *testing.T, name, email string) *domain.User {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return resp.User
}

// subscribeEvents subscribes to the bus before an action and returns a
// function that waits for the next event.
func subscribeEvents(t *testing.T, bus *events.Bus) func() events.ContentChanged {
	t.Helper()

	ch, cancel := bus.Subscribe(16)
	t.Cleanup(cancel)

	return func() events.ContentChanged {
		select {
		case ev := <-ch:
			return ev
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for content event")
			panic("unreachable")
		}
	}
}

func TestSharedValidator(t *testing.T) {
	err := validate.Validate(RegisterRequest{
		Name:     "x",
		Email:    "not-an-email",
		Password: strings.Repeat("p", 4),
	})
	require.Error(t, err)
}
