package store

import (
	"context"
	"fmt"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// CreatePost stores a new post and schedules search indexing.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	if err := s.Posts.Create(ctx, post.ID, post); err != nil {
		return err
	}
	s.syncPostSearch(post)
	return nil
}

// UpdatePost updates a post and keeps the search index in sync. A post that
// is no longer published is removed from the index.
func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) error {
	if err := s.Posts.Update(ctx, post.ID, post); err != nil {
		return err
	}
	s.syncPostSearch(post)
	return nil
}

// DeletePost removes a post and its search document.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	if err := s.Posts.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		go func() {
			if err := s.searchIndexer.DeletePost(context.Background(), id); err != nil {
				if s.logger != nil {
					s.logger.Warn("failed to remove post from search", "post_id", id, "error", err)
				}
			}
		}()
	}
	return nil
}

// syncPostSearch updates the search index for a post asynchronously.
func (s *Store) syncPostSearch(post *domain.Post) {
	if s.searchIndexer == nil {
		return
	}
	go func() {
		var err error
		if post.IsPublished() {
			err = s.searchIndexer.IndexPost(context.Background(), post)
		} else {
			err = s.searchIndexer.DeletePost(context.Background(), post.ID)
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("failed to sync post to search", "post_id", post.ID, "error", err)
		}
	}()
}

// CountPublishedPostsByAuthor counts published posts per author in a single
// scan. Drafts and soft-deleted posts are excluded. Authors with no published
// posts do not appear in the result.
func (s *Store) CountPublishedPostsByAuthor(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	for post, err := range s.Posts.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan posts: %w", err)
		}
		if !post.IsPublished() {
			continue
		}
		counts[post.AuthorID]++
	}

	return counts, nil
}

// GetPostBySlug retrieves a post by its URL slug.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return s.Posts.GetByIndex(ctx, "slug", slug)
}

// ListPostsByAuthor returns all posts by the given author, excluding
// soft-deleted ones.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	var posts []*domain.Post
	for post, err := range s.Posts.ListByIndex(ctx, "author", authorID) {
		if err != nil {
			return nil, fmt.Errorf("list posts by author: %w", err)
		}
		if post.IsDeleted() {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}
