// Package store implements the document store on top of Badger.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search implementation.
type SearchIndexer interface {
	IndexPost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, postID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexPost is a no-op.
func (NoopSearchIndexer) IndexPost(context.Context, *domain.Post) error { return nil }

// DeletePost is a no-op.
func (NoopSearchIndexer) DeletePost(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// SSE event emitter for broadcasting changes.
	eventEmitter EventEmitter

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Generic entities
	Users         *Entity[domain.User]
	Posts         *Entity[domain.Post]
	Challenges    *Entity[domain.Challenge]
	Notifications *Entity[domain.Notification]
}

// New creates a new Store instance with the given database path and event emitter.
// The emitter is required and used to broadcast store changes via SSE.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:           db,
		logger:       logger,
		eventEmitter: emitter,
	}

	// Initialize generic entities
	store.initUsers()
	store.initPosts()
	store.initChallenges()
	store.initNotifications()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// initUsers initializes the Users entity on the store.
// Uses case-insensitive email indexing via normalizeEmail transformation.
// The refresh index maps a refresh token hash to its user; users without an
// active refresh session have no entry.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		).
		WithIndex("refresh", func(u *domain.User) []string {
			if u.RefreshTokenHash == "" {
				return nil
			}
			return []string{u.RefreshTokenHash}
		})
}

// initPosts initializes the Posts entity on the store.
// Indexed uniquely by slug (for permalink lookups) and by author
// (for profile pages and per-author counting).
func (s *Store) initPosts() {
	s.Posts = NewEntity[domain.Post](s, "post:").
		WithIndex("slug", func(p *domain.Post) []string {
			return []string{p.Slug}
		}).
		WithMultiIndex("author", func(p *domain.Post) []string {
			return []string{p.AuthorID}
		})
}

// initChallenges initializes the Challenges entity on the store.
func (s *Store) initChallenges() {
	s.Challenges = NewEntity[domain.Challenge](s, "challenge:").
		WithMultiIndex("author", func(c *domain.Challenge) []string {
			return []string{c.AuthorID}
		})
}

// initNotifications initializes the Notifications entity on the store.
// Indexed by recipient for inbox queries.
func (s *Store) initNotifications() {
	s.Notifications = NewEntity[domain.Notification](s, "notification:").
		WithMultiIndex("recipient", func(n *domain.Notification) []string {
			return []string{n.RecipientID}
		})
}
