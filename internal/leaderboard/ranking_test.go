package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

func TestOriginality(t *testing.T) {
	tests := []struct {
		posts int
		want  int
	}{
		{0, 100},
		{1, 98},
		{2, 96},
		{10, 80},
		{24, 52},
		{25, 50},
		{26, 50},
		{30, 50},
		{1000, 50},
	}

	for _, tt := range tests {
		if got := Originality(tt.posts); got != tt.want {
			t.Errorf("Originality(%d) = %d, want %d", tt.posts, got, tt.want)
		}
	}
}

func TestRank_SortOrder(t *testing.T) {
	entries := []domain.StatEntry{
		{UserID: "usr-a", Name: "A", Blogs: 3, Originality: 94},
		{UserID: "usr-b", Name: "B", Blogs: 1, Originality: 98},
		{UserID: "usr-c", Name: "C", Blogs: 0, Originality: 100},
	}

	Rank(entries)

	assert.Equal(t, "usr-c", entries[0].UserID)
	assert.Equal(t, "usr-b", entries[1].UserID)
	assert.Equal(t, "usr-a", entries[2].UserID)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank, "rank must be contiguous and 1-based")
	}
}

func TestRank_TieBreakByBlogs(t *testing.T) {
	// Both floored at 50 originality, more posts ranks higher.
	entries := []domain.StatEntry{
		{UserID: "usr-a", Blogs: 30, Originality: 50},
		{UserID: "usr-b", Blogs: 40, Originality: 50},
	}

	Rank(entries)

	assert.Equal(t, "usr-b", entries[0].UserID)
	assert.Equal(t, "usr-a", entries[1].UserID)
}

func TestRank_TieBreakByUserID(t *testing.T) {
	entries := []domain.StatEntry{
		{UserID: "usr-z", Blogs: 2, Originality: 96},
		{UserID: "usr-a", Blogs: 2, Originality: 96},
		{UserID: "usr-m", Blogs: 2, Originality: 96},
	}

	Rank(entries)

	assert.Equal(t, "usr-a", entries[0].UserID)
	assert.Equal(t, "usr-m", entries[1].UserID)
	assert.Equal(t, "usr-z", entries[2].UserID)
}

func TestRank_Deterministic(t *testing.T) {
	build := func() []domain.StatEntry {
		return []domain.StatEntry{
			{UserID: "usr-3", Blogs: 5, Originality: 90},
			{UserID: "usr-1", Blogs: 5, Originality: 90},
			{UserID: "usr-2", Blogs: 0, Originality: 100},
			{UserID: "usr-4", Blogs: 9, Originality: 82},
		}
	}

	first := build()
	second := build()
	Rank(first)
	Rank(second)

	assert.Equal(t, first, second)
}

func TestRank_Empty(t *testing.T) {
	var entries []domain.StatEntry
	Rank(entries) // must not panic
	assert.Empty(t, entries)
}
