package domain

import "time"

// Bookmark is a saved link on a user's profile.
// Bookmarks are embedded in the user record rather than stored separately;
// a user's bookmark list is small and always read together with the profile.
type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Href      string    `json:"href"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardRecord holds the leaderboard fields persisted on a user record.
// It is rewritten by the ranking persister each cycle; a nil Rank means the
// user has never been ranked.
type LeaderboardRecord struct {
	Rank        *int       `json:"rank"`
	Blogs       int        `json:"blogs"`
	Originality int        `json:"originality"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// User represents a registered member of the platform.
type User struct {
	Record
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	PasswordHash     string            `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Bio              string            `json:"bio"`
	ProfileImage     string            `json:"profile_image"`
	Bookmarks        []Bookmark        `json:"bookmarks"`
	BookmarksEnabled bool              `json:"bookmarks_enabled"`
	Followers        []string          `json:"followers"` // User IDs following this user
	Following        []string          `json:"following"` // User IDs this user follows
	Leaderboard      LeaderboardRecord `json:"leaderboard"`
	LastLoginAt      time.Time         `json:"last_login_at"`

	// Refresh session state. Only the token hash is stored.
	RefreshTokenHash      string     `json:"refresh_token_hash,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`

	Seeded bool `json:"seeded,omitempty"` // Demo data flag so seed runs can be cleaned up
}

// IsFollowing reports whether the user follows the given user ID.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// Follow adds the given user ID to the following list if not already present.
// Returns true if the list changed.
func (u *User) Follow(userID string) bool {
	if userID == u.ID || u.IsFollowing(userID) {
		return false
	}
	u.Following = append(u.Following, userID)
	return true
}

// Unfollow removes the given user ID from the following list.
// Returns true if the list changed.
func (u *User) Unfollow(userID string) bool {
	for i, id := range u.Following {
		if id == userID {
			u.Following = append(u.Following[:i], u.Following[i+1:]...)
			return true
		}
	}
	return false
}

// AddFollower adds a follower ID if not already present.
// Returns true if the list changed.
func (u *User) AddFollower(userID string) bool {
	for _, id := range u.Followers {
		if id == userID {
			return false
		}
	}
	u.Followers = append(u.Followers, userID)
	return true
}

// RemoveFollower removes a follower ID. Returns true if the list changed.
func (u *User) RemoveFollower(userID string) bool {
	for i, id := range u.Followers {
		if id == userID {
			u.Followers = append(u.Followers[:i], u.Followers[i+1:]...)
			return true
		}
	}
	return false
}

// HasBookmark reports whether a bookmark with the given ID exists.
func (u *User) HasBookmark(bookmarkID string) bool {
	for _, b := range u.Bookmarks {
		if b.ID == bookmarkID {
			return true
		}
	}
	return false
}

// RemoveBookmark deletes the bookmark with the given ID.
// Returns true if the list changed.
func (u *User) RemoveBookmark(bookmarkID string) bool {
	for i, b := range u.Bookmarks {
		if b.ID == bookmarkID {
			u.Bookmarks = append(u.Bookmarks[:i], u.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}
