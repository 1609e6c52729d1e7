package service

import (
	"context"
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/events"
	"github.com/campusconnect/campusconnect-server/internal/id"
	"github.com/campusconnect/campusconnect-server/internal/slug"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// PostService handles blog post CRUD and publishes content-change events
// that drive leaderboard recomputation.
type PostService struct {
	store  *store.Store
	bus    *events.Bus
	logger *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(s *store.Store, bus *events.Bus, logger *slog.Logger) *PostService {
	return &PostService{
		store:  s,
		bus:    bus,
		logger: logger,
	}
}

// CreatePostRequest contains the data for a new post.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"required"`
	Mood      string `json:"mood,omitempty" validate:"omitempty,max=40"`
	Essential bool   `json:"essential"`
	Draft     bool   `json:"draft"`
}

// UpdatePostRequest contains editable post fields. Nil pointers leave the
// field unchanged.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content,omitempty"`
	Mood      *string `json:"mood,omitempty" validate:"omitempty,max=40"`
	Essential *bool   `json:"essential,omitempty"`
	Draft     *bool   `json:"draft,omitempty"`
}

// Create stores a new post for the given author.
func (s *PostService) Create(ctx context.Context, authorID string, req CreatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	post := &domain.Post{
		Record:    domain.Record{ID: postID},
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		Mood:      req.Mood,
		Essential: req.Essential,
		Draft:     req.Draft,
	}
	post.InitTimestamps()

	post.Slug, err = s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("post created", "post_id", postID, "author_id", authorID, "draft", post.Draft)
	}

	s.bus.Publish(events.ContentChanged{
		Kind:      events.PostCreated,
		ActorID:   authorID,
		SubjectID: postID,
	})

	return post, nil
}

// Get retrieves a post by ID. Soft-deleted posts are treated as missing.
func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.store.Posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, store.ErrNotFound
	}
	return post, nil
}

// GetBySlug retrieves a post by its URL slug.
func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*domain.Post, error) {
	post, err := s.store.GetPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, store.ErrNotFound
	}
	return post, nil
}

// ListByAuthor returns all posts by an author. Drafts are included so
// authors can see their own unpublished work.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.store.ListPostsByAuthor(ctx, authorID)
}

// Update edits a post. Only the author may edit.
func (s *PostService) Update(ctx context.Context, userID, postID string, req UpdatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, errors.Forbidden("only the author can edit this post")
	}

	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		post.Slug, err = s.uniqueSlug(ctx, post.Title)
		if err != nil {
			return nil, err
		}
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Mood != nil {
		post.Mood = *req.Mood
	}
	if req.Essential != nil {
		post.Essential = *req.Essential
	}
	if req.Draft != nil {
		post.Draft = *req.Draft
	}
	post.Touch()

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.bus.Publish(events.ContentChanged{
		Kind:      events.PostUpdated,
		ActorID:   userID,
		SubjectID: postID,
	})

	return post, nil
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return errors.Forbidden("only the author can delete this post")
	}

	if err := s.store.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("post deleted", "post_id", postID, "author_id", userID)
	}

	s.bus.Publish(events.ContentChanged{
		Kind:      events.PostDeleted,
		ActorID:   userID,
		SubjectID: postID,
	})

	return nil
}

// uniqueSlug derives a URL slug from the title, appending a short random
// suffix when the base slug is taken.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	if _, err := s.store.GetPostBySlug(ctx, base); errors.Is(err, store.ErrNotFound) {
		return base, nil
	} else if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}

	suffix, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 6)
	if err != nil {
		return "", fmt.Errorf("generate slug suffix: %w", err)
	}
	return slug.WithSuffix(title, suffix), nil
}
