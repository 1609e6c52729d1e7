package domain

import "time"

// StatEntry is one user's computed leaderboard statistics for a single
// recomputation cycle. Entries are ephemeral: they exist in memory during
// ranking and are discarded once projected onto user records and broadcast.
type StatEntry struct {
	UserID      string `json:"id"`
	Name        string `json:"name"`
	Blogs       int    `json:"blogs"`
	Originality int    `json:"originality"`
	Rank        int    `json:"-"` // 1-based; implied by array position in API responses
}

// Snapshot is a fully ranked leaderboard produced by one recomputation
// cycle. Entries are ordered by rank.
type Snapshot struct {
	ComputedAt time.Time   `json:"computed_at"`
	Entries    []StatEntry `json:"entries"`
}
