package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// LeaderboardUpdateResult reports the outcome of a leaderboard write.
type LeaderboardUpdateResult struct {
	// Matched is true when the user exists and is not deleted.
	Matched bool
	// Modified is true when the stored leaderboard record changed.
	// UpdatedAt is refreshed on every write, so a matched write always
	// modifies the record.
	Modified bool
}

// UpdateUserLeaderboard writes a user's leaderboard fields in a single
// transaction, leaving the rest of the user document untouched.
//
// A missing or soft-deleted user yields Matched=false with a nil error so
// callers can treat it as a per-user failure rather than aborting a whole
// batch.
func (s *Store) UpdateUserLeaderboard(ctx context.Context, userID string, rec domain.LeaderboardRecord) (LeaderboardUpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return LeaderboardUpdateResult{}, err
	}

	key := []byte("user:" + userID)
	var res LeaderboardUpdateResult

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var user domain.User
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
		if err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}

		if user.IsDeleted() {
			return nil
		}
		res.Matched = true

		now := time.Now().UTC()
		rec.UpdatedAt = &now
		user.Leaderboard = rec

		data, err := json.Marshal(&user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		res.Modified = true
		return nil
	})
	if err != nil {
		return LeaderboardUpdateResult{}, err
	}

	return res, nil
}

// GetUserByEmail retrieves a user by email address, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}

// GetUserByRefreshTokenHash retrieves the user holding the given refresh
// token hash, or ErrNotFound if no session matches.
func (s *Store) GetUserByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "refresh", hash)
}

// normalizeEmail normalizes an email address for consistent lookups.
// Lowercases and trims whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
