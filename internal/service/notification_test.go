package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
)

func seedNotification(t *testing.T, env *testEnv, id, recipientID string, createdAt time.Time) {
	t.Helper()

	n := &domain.Notification{
		Record:      domain.Record{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		RecipientID: recipientID,
		Message:     "test notification",
	}
	require.NoError(t, env.store.CreateNotification(context.Background(), n))
}

func TestListNotifications_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	notifications := NewNotificationService(env.store, nil)
	ctx := context.Background()

	base := time.Now().UTC()
	seedNotification(t, env, "ntf-old", "usr-1", base.Add(-2*time.Hour))
	seedNotification(t, env, "ntf-new", "usr-1", base)
	seedNotification(t, env, "ntf-mid", "usr-1", base.Add(-time.Hour))
	seedNotification(t, env, "ntf-other", "usr-2", base)

	list, err := notifications.List(ctx, "usr-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ntf-new", list[0].ID)
	assert.Equal(t, "ntf-mid", list[1].ID)
	assert.Equal(t, "ntf-old", list[2].ID)
}

func TestMarkRead(t *testing.T) {
	env := newTestEnv(t)
	notifications := NewNotificationService(env.store, nil)
	ctx := context.Background()

	seedNotification(t, env, "ntf-1", "usr-1", time.Now().UTC())

	require.NoError(t, notifications.MarkRead(ctx, "usr-1", "ntf-1"))

	got, err := env.store.Notifications.Get(ctx, "ntf-1")
	require.NoError(t, err)
	assert.True(t, got.Read)

	// Idempotent.
	require.NoError(t, notifications.MarkRead(ctx, "usr-1", "ntf-1"))
}

func TestMarkRead_WrongUser(t *testing.T) {
	env := newTestEnv(t)
	notifications := NewNotificationService(env.store, nil)

	seedNotification(t, env, "ntf-1", "usr-1", time.Now().UTC())

	err := notifications.MarkRead(context.Background(), "usr-2", "ntf-1")
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	notifications := NewNotificationService(env.store, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	seedNotification(t, env, "ntf-1", "usr-1", now)
	seedNotification(t, env, "ntf-2", "usr-1", now)
	require.NoError(t, notifications.MarkRead(ctx, "usr-1", "ntf-1"))

	updated, err := notifications.MarkAllRead(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	list, err := notifications.List(ctx, "usr-1")
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.Read)
	}
}
