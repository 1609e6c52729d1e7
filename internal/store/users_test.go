package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

func intPtr(i int) *int { return &i }

func TestUpdateUserLeaderboard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	res, err := s.UpdateUserLeaderboard(ctx, "usr-1", domain.LeaderboardRecord{
		Rank:        intPtr(1),
		Blogs:       4,
		Originality: 92,
	})
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.True(t, res.Modified)

	got, err := s.Users.Get(ctx, "usr-1")
	require.NoError(t, err)
	require.NotNil(t, got.Leaderboard.Rank)
	assert.Equal(t, 1, *got.Leaderboard.Rank)
	assert.Equal(t, 4, got.Leaderboard.Blogs)
	assert.Equal(t, 92, got.Leaderboard.Originality)
	require.NotNil(t, got.Leaderboard.UpdatedAt)
	assert.WithinDuration(t, time.Now().UTC(), *got.Leaderboard.UpdatedAt, 5*time.Second)
}

func TestUpdateUserLeaderboard_MissingUser(t *testing.T) {
	s := newTestStore(t)

	res, err := s.UpdateUserLeaderboard(context.Background(), "usr-ghost", domain.LeaderboardRecord{
		Rank:        intPtr(1),
		Blogs:       1,
		Originality: 98,
	})
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.False(t, res.Modified)
}

func TestUpdateUserLeaderboard_DeletedUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	user.MarkDeleted()
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	res, err := s.UpdateUserLeaderboard(ctx, "usr-1", domain.LeaderboardRecord{
		Rank:        intPtr(1),
		Blogs:       1,
		Originality: 98,
	})
	require.NoError(t, err)
	assert.False(t, res.Matched)
}

func TestUpdateUserLeaderboard_Repeated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	rec := domain.LeaderboardRecord{Rank: intPtr(2), Blogs: 10, Originality: 80}

	// Writing the same values twice still matches and refreshes UpdatedAt.
	res, err := s.UpdateUserLeaderboard(ctx, "usr-1", rec)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.True(t, res.Modified)

	res, err = s.UpdateUserLeaderboard(ctx, "usr-1", rec)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.True(t, res.Modified)
}

func TestUpdateUserLeaderboard_PreservesOtherFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	user.Bio = "Studying distributed systems"
	user.Following = []string{"usr-2"}
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	_, err := s.UpdateUserLeaderboard(ctx, "usr-1", domain.LeaderboardRecord{
		Rank:        intPtr(3),
		Blogs:       7,
		Originality: 86,
	})
	require.NoError(t, err)

	got, err := s.Users.Get(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "Studying distributed systems", got.Bio)
	assert.Equal(t, []string{"usr-2"}, got.Following)
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	got, err := s.GetUserByEmail(ctx, "  ASHA@campus.edu ")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
}
