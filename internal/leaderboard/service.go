package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/events"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// Broadcaster publishes fresh snapshots to stream subscribers.
type Broadcaster interface {
	BroadcastLeaderboard(snapshot *domain.Snapshot)
}

// NoopBroadcaster discards snapshots, for tests and tooling.
type NoopBroadcaster struct{}

// BroadcastLeaderboard is a no-op.
func (NoopBroadcaster) BroadcastLeaderboard(*domain.Snapshot) {}

// Service orchestrates leaderboard cycles: compute, cache, persist, and
// broadcast. Cycles may overlap; persistence is last-write-wins and
// idempotent, so no serialization is needed.
type Service struct {
	store       *store.Store
	cache       *Cache
	persister   *Persister
	broadcaster Broadcaster
	logger      *slog.Logger
	interval    time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewService creates the leaderboard service. interval controls the periodic
// recomputation; updateTimeout bounds each per-user persistence write.
func NewService(s *store.Store, broadcaster Broadcaster, interval, updateTimeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		store:       s,
		cache:       NewCache(),
		persister:   NewPersister(s, updateTimeout, logger),
		broadcaster: broadcaster,
		logger:      logger,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

// Compute aggregates statistics for every user and returns ranked entries.
// Read-only: no cache write, no persistence, no broadcast.
//
// Users with zero published posts are included with a count of zero. Any
// store error fails the whole computation.
func (s *Service) Compute(ctx context.Context) ([]domain.StatEntry, error) {
	counts, err := s.store.CountPublishedPostsByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	var entries []domain.StatEntry
	for user, err := range s.store.Users.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		if user.IsDeleted() {
			continue
		}

		blogs := counts[user.ID]
		entries = append(entries, domain.StatEntry{
			UserID:      user.ID,
			Name:        user.Name,
			Blogs:       blogs,
			Originality: Originality(blogs),
		})
	}

	Rank(entries)
	return entries, nil
}

// CycleResult reports the outcome of a full leaderboard cycle.
type CycleResult struct {
	Entries  []domain.StatEntry
	OK       bool
	Failures []Failure
}

// RunCycle performs a full cycle: compute, cache the snapshot, broadcast it
// to subscribers, and persist entries onto user records. Broadcast runs
// concurrently with persistence; neither affects the other.
//
// A computation error aborts the cycle and leaves the previous cached
// snapshot in place. Persistence failures are partial: they are collected
// in the result and logged, never fatal.
func (s *Service) RunCycle(ctx context.Context, reason string) (*CycleResult, error) {
	start := time.Now()

	entries, err := s.Compute(ctx)
	if err != nil {
		s.logger.Error("Leaderboard computation failed", "reason", reason, "error", err)
		return nil, err
	}

	snapshot := s.cache.Set(entries)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.broadcaster.BroadcastLeaderboard(snapshot)
	}()

	ok, failures := s.persister.Persist(ctx, entries)

	s.logger.Info("Leaderboard cycle complete",
		"reason", reason,
		"users", len(entries),
		"ok", ok,
		"duration", time.Since(start))

	return &CycleResult{Entries: entries, OK: ok, Failures: failures}, nil
}

// Snapshot returns the cached snapshot for a new stream subscriber. With an
// empty cache it runs a full cycle first so the subscriber is not left
// waiting for the next timer tick.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if snap := s.cache.Get(); snap != nil {
		return snap, nil
	}

	if _, err := s.RunCycle(ctx, "initial subscriber"); err != nil {
		return nil, err
	}
	return s.cache.Get(), nil
}

// Start launches the background loop: one initial cycle, then a cycle on
// every timer tick and on every content-change event from the bus.
func (s *Service) Start(bus *events.Bus) {
	changes, cancel := bus.Subscribe(64)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		ctx := context.Background()

		if _, err := s.RunCycle(ctx, "startup"); err != nil {
			s.logger.Error("Initial leaderboard cycle failed", "error", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if _, err := s.RunCycle(ctx, "timer"); err != nil {
					s.logger.Error("Periodic leaderboard cycle failed", "error", err)
				}
			case ev, ok := <-changes:
				if !ok {
					return
				}
				if _, err := s.RunCycle(ctx, string(ev.Kind)); err != nil {
					s.logger.Error("Event-triggered leaderboard cycle failed",
						"kind", ev.Kind, "error", err)
				}
			}
		}
	}()
}

// Shutdown stops the background loop and waits for in-flight broadcasts.
func (s *Service) Shutdown() error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
	return nil
}
