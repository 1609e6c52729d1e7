// Package leaderboard implements the contributor leaderboard: aggregation of
// per-user post counts, originality scoring, ranking, persistence onto user
// records, and broadcast of fresh snapshots to stream subscribers.
package leaderboard

import (
	"sort"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// Originality derives the originality score from a post count.
// Every two posts cost one point off 100, floored at 50.
func Originality(postCount int) int {
	score := 100 - postCount*2
	if score < 50 {
		return 50
	}
	return score
}

// Rank sorts entries by originality descending, post count descending, and
// user ID ascending as a deterministic tie-break, then assigns contiguous
// 1-based ranks by position.
func Rank(entries []domain.StatEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Originality != entries[j].Originality {
			return entries[i].Originality > entries[j].Originality
		}
		if entries[i].Blogs != entries[j].Blogs {
			return entries[i].Blogs > entries[j].Blogs
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
}
