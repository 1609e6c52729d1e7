package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/search"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// SearchService keeps the full-text index in sync with the store. It
// implements store.SearchIndexer so the store can push changes to it as
// posts are written.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, s *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  s,
		logger: logger,
	}
}

// IndexPost adds or updates a post in the search index. The author name
// is denormalized into the document so search results render without a
// second lookup.
func (s *SearchService) IndexPost(ctx context.Context, post *domain.Post) error {
	authorName := ""
	if author, err := s.store.Users.Get(ctx, post.AuthorID); err == nil {
		authorName = author.Name
	} else if s.logger != nil {
		s.logger.Warn("indexing post without author name",
			"post_id", post.ID,
			"author_id", post.AuthorID,
			"error", err)
	}

	return s.index.IndexDocument(search.NewPostDocument(post, authorName))
}

// DeletePost removes a post from the search index.
func (s *SearchService) DeletePost(_ context.Context, postID string) error {
	return s.index.DeleteDocument(postID)
}

// Search runs a full-text query over indexed posts.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll wipes the index and rebuilds it from every published post
// in the store.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	names := make(map[string]string)
	for user, err := range s.store.Users.List(ctx) {
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		names[user.ID] = user.Name
	}

	var docs []*search.PostDocument
	for post, err := range s.store.Posts.List(ctx) {
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		if !post.IsPublished() {
			continue
		}
		docs = append(docs, search.NewPostDocument(post, names[post.AuthorID]))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index posts: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("search reindex completed", "documents", len(docs))
	}
	return nil
}
