package domain

// Post is a blog post authored by a user.
type Post struct {
	Record
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	AuthorID  string `json:"author_id"`
	Mood      string `json:"mood,omitempty"`
	Essential bool   `json:"essential"`
	Draft     bool   `json:"draft"`
	Seeded    bool   `json:"seeded,omitempty"`
}

// IsPublished reports whether the post counts as published content.
// Drafts and soft-deleted posts are excluded from leaderboard stats and
// search.
func (p *Post) IsPublished() bool {
	return !p.Draft && !p.IsDeleted()
}
