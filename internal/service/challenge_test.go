package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/errors"
)

func TestCreateChallenge(t *testing.T) {
	env := newTestEnv(t)
	challenges := NewChallengeService(env.store, nil)
	author := env.registerUser(t, "Asha Patel", "asha@campus.edu")

	challenge, err := challenges.Create(context.Background(), author.ID, CreateChallengeRequest{
		Title:       "30 Days of Writing",
		Description: "One post a day for a month.",
	})
	require.NoError(t, err)

	assert.Equal(t, author.ID, challenge.AuthorID)
	// The author joins automatically.
	assert.True(t, challenge.HasParticipant(author.ID))
}

func TestJoinAndLeaveChallenge(t *testing.T) {
	env := newTestEnv(t)
	challenges := NewChallengeService(env.store, nil)
	author := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	member := env.registerUser(t, "Ben Okafor", "ben@campus.edu")
	ctx := context.Background()

	challenge, err := challenges.Create(ctx, author.ID, CreateChallengeRequest{
		Title:       "30 Days of Writing",
		Description: "One post a day.",
	})
	require.NoError(t, err)

	joined, err := challenges.Join(ctx, member.ID, challenge.ID)
	require.NoError(t, err)
	assert.True(t, joined.HasParticipant(member.ID))

	// Double join conflicts.
	_, err = challenges.Join(ctx, member.ID, challenge.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)

	left, err := challenges.Leave(ctx, member.ID, challenge.ID)
	require.NoError(t, err)
	assert.False(t, left.HasParticipant(member.ID))

	// Leaving again conflicts.
	_, err = challenges.Leave(ctx, member.ID, challenge.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)
}

func TestLeaveChallenge_AuthorCannotLeave(t *testing.T) {
	env := newTestEnv(t)
	challenges := NewChallengeService(env.store, nil)
	author := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	ctx := context.Background()

	challenge, err := challenges.Create(ctx, author.ID, CreateChallengeRequest{
		Title:       "My Challenge",
		Description: "Stuck with it.",
	})
	require.NoError(t, err)

	_, err = challenges.Leave(ctx, author.ID, challenge.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestListChallenges(t *testing.T) {
	env := newTestEnv(t)
	challenges := NewChallengeService(env.store, nil)
	author := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	ctx := context.Background()

	first, err := challenges.Create(ctx, author.ID, CreateChallengeRequest{
		Title:       "First",
		Description: "One.",
	})
	require.NoError(t, err)
	_, err = challenges.Create(ctx, author.ID, CreateChallengeRequest{
		Title:       "Second",
		Description: "Two.",
	})
	require.NoError(t, err)

	require.NoError(t, challenges.Delete(ctx, author.ID, first.ID))

	list, err := challenges.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Second", list[0].Title)
}

func TestDeleteChallenge_NotAuthor(t *testing.T) {
	env := newTestEnv(t)
	challenges := NewChallengeService(env.store, nil)
	author := env.registerUser(t, "Asha Patel", "asha@campus.edu")
	other := env.registerUser(t, "Ben Okafor", "ben@campus.edu")
	ctx := context.Background()

	challenge, err := challenges.Create(ctx, author.ID, CreateChallengeRequest{
		Title:       "Protected",
		Description: "Only the author deletes.",
	})
	require.NoError(t, err)

	err = challenges.Delete(ctx, other.ID, challenge.ID)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}
