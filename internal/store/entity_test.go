package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

func newTestUser(id, name, email string) *domain.User {
	u := &domain.User{
		Name:  name,
		Email: email,
	}
	u.ID = id
	u.InitTimestamps()
	return u
}

func newTestPost(id, authorID, slug string, draft bool) *domain.Post {
	p := &domain.Post{
		Title:    "Post " + id,
		Slug:     slug,
		Content:  "content",
		AuthorID: authorID,
		Draft:    draft,
	}
	p.ID = id
	p.InitTimestamps()
	return p
}

func TestEntity_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	got, err := s.Users.Get(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "asha@campus.edu", got.Email)
}

func TestEntity_GetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users.Get(context.Background(), "usr-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_CreateDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	dup := newTestUser("usr-1", "Other", "other@campus.edu")
	err := s.Users.Create(ctx, dup.ID, dup)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestEntity_UniqueIndexConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, first.ID, first))

	// Same email with different case should conflict via normalization.
	second := newTestUser("usr-2", "Impostor", "ASHA@campus.edu")
	err := s.Users.Create(ctx, second.ID, second)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestEntity_GetByIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	// Lookup is case-insensitive.
	got, err := s.Users.GetByIndex(ctx, "email", "Asha@Campus.EDU")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)

	_, err = s.Users.GetByIndex(ctx, "email", "nobody@campus.edu")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	user.Name = "Asha K."
	user.Email = "asha.k@campus.edu"
	require.NoError(t, s.Users.Update(ctx, user.ID, user))

	got, err := s.Users.GetByIndex(ctx, "email", "asha.k@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Asha K.", got.Name)

	// Old index entry is gone.
	_, err = s.Users.GetByIndex(ctx, "email", "asha@campus.edu")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_UpdateNotFound(t *testing.T) {
	s := newTestStore(t)

	user := newTestUser("usr-ghost", "Ghost", "ghost@campus.edu")
	err := s.Users.Update(context.Background(), user.ID, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntity_DeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser("usr-1", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	require.NoError(t, s.Users.Delete(ctx, "usr-1"))
	// Second delete is a no-op.
	require.NoError(t, s.Users.Delete(ctx, "usr-1"))

	_, err := s.Users.Get(ctx, "usr-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Index entry cleaned up, email is reusable.
	again := newTestUser("usr-2", "Asha", "asha@campus.edu")
	require.NoError(t, s.Users.Create(ctx, again.ID, again))
}

func TestEntity_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, u := range []*domain.User{
		newTestUser("usr-1", "Asha", "asha@campus.edu"),
		newTestUser("usr-2", "Ben", "ben@campus.edu"),
		newTestUser("usr-3", "Chloe", "chloe@campus.edu"),
	} {
		require.NoError(t, s.Users.Create(ctx, u.ID, u))
	}

	var ids []string
	for user, err := range s.Users.List(ctx) {
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}

	assert.ElementsMatch(t, []string{"usr-1", "usr-2", "usr-3"}, ids)
}

func TestEntity_MultiIndexList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	posts := []*domain.Post{
		newTestPost("post-1", "usr-1", "first", false),
		newTestPost("post-2", "usr-1", "second", false),
		newTestPost("post-3", "usr-2", "third", false),
	}
	for _, p := range posts {
		require.NoError(t, s.Posts.Create(ctx, p.ID, p))
	}

	var ids []string
	for post, err := range s.Posts.ListByIndex(ctx, "author", "usr-1") {
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}
	assert.ElementsMatch(t, []string{"post-1", "post-2"}, ids)

	// Deleting one post removes its index entry.
	require.NoError(t, s.Posts.Delete(ctx, "post-1"))

	ids = nil
	for post, err := range s.Posts.ListByIndex(ctx, "author", "usr-1") {
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}
	assert.Equal(t, []string{"post-2"}, ids)
}
