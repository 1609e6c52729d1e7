package leaderboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// Failure records a single entry that could not be persisted.
type Failure struct {
	UserID string `json:"id"`
	Reason string `json:"reason"`
}

// Persister writes ranked entries onto user records.
type Persister struct {
	store   *store.Store
	logger  *slog.Logger
	timeout time.Duration
}

// NewPersister creates a persister. timeout bounds each per-user write so a
// hung update fails that entry without stalling the rest of the batch.
func NewPersister(s *store.Store, timeout time.Duration, logger *slog.Logger) *Persister {
	return &Persister{
		store:   s,
		logger:  logger,
		timeout: timeout,
	}
}

// Persist updates leaderboard fields for every entry, one user at a time.
// Each entry is independent: a missing user or write error is collected and
// the batch continues. ok is true only when every update matched and
// modified its user record. Re-running with the same entries is safe.
func (p *Persister) Persist(ctx context.Context, entries []domain.StatEntry) (bool, []Failure) {
	var failures []Failure

	for _, entry := range entries {
		rank := entry.Rank
		rec := domain.LeaderboardRecord{
			Rank:        &rank,
			Blogs:       entry.Blogs,
			Originality: entry.Originality,
		}

		updateCtx, cancel := context.WithTimeout(ctx, p.timeout)
		res, err := p.store.UpdateUserLeaderboard(updateCtx, entry.UserID, rec)
		cancel()

		switch {
		case err != nil:
			failures = append(failures, Failure{UserID: entry.UserID, Reason: err.Error()})
			p.logger.Error("Failed to update leaderboard for user",
				"user_id", entry.UserID, "error", err)
		case !res.Matched:
			failures = append(failures, Failure{UserID: entry.UserID, Reason: "user not found"})
			p.logger.Warn("Leaderboard update matched no user", "user_id", entry.UserID)
		case !res.Modified:
			failures = append(failures, Failure{UserID: entry.UserID, Reason: "not modified"})
		}
	}

	if len(failures) > 0 {
		ids := make([]string, len(failures))
		for i, f := range failures {
			ids[i] = f.UserID
		}
		p.logger.Error("Leaderboard persistence had failures", "user_ids", ids)
		return false, failures
	}

	p.logger.Info("Leaderboard persisted", "users", len(entries))
	return true, nil
}
