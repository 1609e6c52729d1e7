package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/events"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	user := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	next := subscribeEvents(t, env.bus)

	bio := "CS sophomore, coffee enthusiast."
	updated, err := users.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Asha Patel", updated.Name)

	ev := next()
	assert.Equal(t, events.ProfileUpdated, ev.Kind)
	assert.Equal(t, user.ID, ev.SubjectID)
}

func TestBookmarks(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	user := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	ctx := context.Background()

	bookmark, err := users.AddBookmark(ctx, user.ID, AddBookmarkRequest{
		Title: "Course Catalog",
		Href:  "https://catalog.campus.edu",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bookmark.ID)

	got, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Bookmarks, 1)

	require.NoError(t, users.RemoveBookmark(ctx, user.ID, bookmark.ID))

	got, err = users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Bookmarks)

	err = users.RemoveBookmark(ctx, user.ID, bookmark.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestAddBookmark_Disabled(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	user := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	ctx := context.Background()

	disabled := false
	_, err := users.UpdateProfile(ctx, user.ID, UpdateProfileRequest{BookmarksEnabled: &disabled})
	require.NoError(t, err)

	_, err = users.AddBookmark(ctx, user.ID, AddBookmarkRequest{
		Title: "Nope",
		Href:  "https://example.com",
	})
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	follower := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	target := env.registerUser(t, "Ben Okafor", "ben@campus.edu")
	ctx := context.Background()

	require.NoError(t, users.Follow(ctx, follower.ID, target.ID))

	gotFollower, err := users.Get(ctx, follower.ID)
	require.NoError(t, err)
	assert.True(t, gotFollower.IsFollowing(target.ID))

	gotTarget, err := users.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Contains(t, gotTarget.Followers, follower.ID)

	// Follow notification lands in the target's inbox.
	inbox, err := env.store.ListNotificationsByRecipient(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, follower.ID, inbox[0].SenderID)
	assert.Contains(t, inbox[0].Message, "Asha Patel")

	// Following again is a no-op and sends no second notification.
	require.NoError(t, users.Follow(ctx, follower.ID, target.ID))
	inbox, err = env.store.ListNotificationsByRecipient(ctx, target.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}

func TestFollow_Self(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	user := env.registerUser(t, "Asha Patel", "asha@campus.edu")

	err := users.Follow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.store, env.bus, nil)
	follower := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	target := env.registerUser(t, "Ben Okafor", "ben@campus.edu")
	ctx := context.Background()

	require.NoError(t, users.Follow(ctx, follower.ID, target.ID))
	require.NoError(t, users.Unfollow(ctx, follower.ID, target.ID))

	gotFollower, err := users.Get(ctx, follower.ID)
	require.NoError(t, err)
	assert.False(t, gotFollower.IsFollowing(target.ID))

	gotTarget, err := users.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.NotContains(t, gotTarget.Followers, follower.ID)

	// Unfollowing when not following is a no-op.
	require.NoError(t, users.Unfollow(ctx, follower.ID, target.ID))
}
