package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/id"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// ChallengeService handles writing challenges and participation.
type ChallengeService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewChallengeService creates a new challenge service.
func NewChallengeService(s *store.Store, logger *slog.Logger) *ChallengeService {
	return &ChallengeService{
		store:  s,
		logger: logger,
	}
}

// CreateChallengeRequest contains the data for a new challenge.
type CreateChallengeRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
}

// Create stores a new challenge; the author joins automatically.
func (s *ChallengeService) Create(ctx context.Context, authorID string, req CreateChallengeRequest) (*domain.Challenge, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	challengeID, err := id.Generate("chal")
	if err != nil {
		return nil, fmt.Errorf("generate challenge ID: %w", err)
	}

	challenge := &domain.Challenge{
		Record:       domain.Record{ID: challengeID},
		Title:        req.Title,
		Description:  req.Description,
		AuthorID:     authorID,
		Participants: []string{authorID},
	}
	challenge.InitTimestamps()

	if err := s.store.Challenges.Create(ctx, challengeID, challenge); err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("challenge created", "challenge_id", challengeID, "author_id", authorID)
	}

	return challenge, nil
}

// Get retrieves a challenge by ID. Soft-deleted challenges are treated as
// missing.
func (s *ChallengeService) Get(ctx context.Context, challengeID string) (*domain.Challenge, error) {
	challenge, err := s.store.Challenges.Get(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.IsDeleted() {
		return nil, store.ErrNotFound
	}
	return challenge, nil
}

// List returns all active challenges.
func (s *ChallengeService) List(ctx context.Context) ([]*domain.Challenge, error) {
	var challenges []*domain.Challenge
	for c, err := range s.store.Challenges.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list challenges: %w", err)
		}
		if c.IsDeleted() {
			continue
		}
		challenges = append(challenges, c)
	}
	return challenges, nil
}

// Join adds the user to the challenge's participants.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	challenge, err := s.Get(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if !challenge.Join(userID) {
		return nil, errors.Conflict("already participating in this challenge")
	}
	challenge.Touch()

	if err := s.store.Challenges.Update(ctx, challengeID, challenge); err != nil {
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return challenge, nil
}

// Leave removes the user from the challenge's participants. The author
// cannot leave their own challenge.
func (s *ChallengeService) Leave(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	challenge, err := s.Get(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.AuthorID == userID {
		return nil, errors.Forbidden("the author cannot leave their own challenge")
	}

	if !challenge.Leave(userID) {
		return nil, errors.Conflict("not participating in this challenge")
	}
	challenge.Touch()

	if err := s.store.Challenges.Update(ctx, challengeID, challenge); err != nil {
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return challenge, nil
}

// Delete removes a challenge. Only the author may delete.
func (s *ChallengeService) Delete(ctx context.Context, userID, challengeID string) error {
	challenge, err := s.Get(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge.AuthorID != userID {
		return errors.Forbidden("only the author can delete this challenge")
	}

	if err := s.store.Challenges.Delete(ctx, challengeID); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}
