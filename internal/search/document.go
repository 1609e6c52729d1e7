// Package search provides full-text search over published posts using Bleve.
package search

import (
	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// PostDocument is the indexed representation of a post.
type PostDocument struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Mood       string `json:"mood"`
	CreatedAt  int64  `json:"created_at"`
}

// NewPostDocument builds a search document from a post and its author's
// display name.
func NewPostDocument(post *domain.Post, authorName string) *PostDocument {
	return &PostDocument{
		ID:         post.ID,
		Title:      post.Title,
		Slug:       post.Slug,
		Content:    post.Content,
		AuthorID:   post.AuthorID,
		AuthorName: authorName,
		Mood:       post.Mood,
		CreatedAt:  post.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map so field names match the mapping.
func (d *PostDocument) ToMap() map[string]any {
	return map[string]any{
		"id":          d.ID,
		"title":       d.Title,
		"slug":        d.Slug,
		"content":     d.Content,
		"author_id":   d.AuthorID,
		"author_name": d.AuthorName,
		"mood":        d.Mood,
		"created_at":  d.CreatedAt,
	}
}
