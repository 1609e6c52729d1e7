package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FollowUnfollow(t *testing.T) {
	u := &User{Record: Record{ID: "usr-1"}}

	assert.True(t, u.Follow("usr-2"))
	assert.False(t, u.Follow("usr-2"), "following twice should be a no-op")
	assert.False(t, u.Follow("usr-1"), "cannot follow self")
	assert.True(t, u.IsFollowing("usr-2"))

	assert.True(t, u.Unfollow("usr-2"))
	assert.False(t, u.Unfollow("usr-2"))
	assert.False(t, u.IsFollowing("usr-2"))
}

func TestUser_Followers(t *testing.T) {
	u := &User{Record: Record{ID: "usr-1"}}

	assert.True(t, u.AddFollower("usr-2"))
	assert.False(t, u.AddFollower("usr-2"))
	assert.Len(t, u.Followers, 1)

	assert.True(t, u.RemoveFollower("usr-2"))
	assert.Empty(t, u.Followers)
}

func TestUser_Bookmarks(t *testing.T) {
	u := &User{Record: Record{ID: "usr-1"}}
	u.Bookmarks = []Bookmark{
		{ID: "bm-1", Title: "First", Href: "/blog/first"},
		{ID: "bm-2", Title: "Second", Href: "/blog/second"},
	}

	assert.True(t, u.HasBookmark("bm-1"))
	assert.True(t, u.RemoveBookmark("bm-1"))
	assert.False(t, u.HasBookmark("bm-1"))
	assert.False(t, u.RemoveBookmark("bm-1"))
	assert.Len(t, u.Bookmarks, 1)
}

func TestChallenge_JoinLeave(t *testing.T) {
	c := &Challenge{Record: Record{ID: "chal-1"}}

	assert.True(t, c.Join("usr-1"))
	assert.False(t, c.Join("usr-1"))
	assert.True(t, c.HasParticipant("usr-1"))

	assert.True(t, c.Leave("usr-1"))
	assert.False(t, c.Leave("usr-1"))
	assert.Empty(t, c.Participants)
}

func TestPost_IsPublished(t *testing.T) {
	p := &Post{Record: Record{ID: "post-1"}}
	assert.True(t, p.IsPublished())

	p.Draft = true
	assert.False(t, p.IsPublished())

	p.Draft = false
	p.MarkDeleted()
	assert.False(t, p.IsPublished())
}
