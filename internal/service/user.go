package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/events"
	"github.com/campusconnect/campusconnect-server/internal/id"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// UserService handles profiles, bookmarks and the follow graph.
type UserService struct {
	store  *store.Store
	bus    *events.Bus
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(s *store.Store, bus *events.Bus, logger *slog.Logger) *UserService {
	return &UserService{
		store:  s,
		bus:    bus,
		logger: logger,
	}
}

// UpdateProfileRequest contains editable profile fields. Nil pointers leave
// the field unchanged.
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio              *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfileImage     *string `json:"profile_image,omitempty" validate:"omitempty,url"`
	BookmarksEnabled *bool   `json:"bookmarks_enabled,omitempty"`
}

// AddBookmarkRequest contains a new bookmark's data.
type AddBookmarkRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Href  string `json:"href" validate:"required,url"`
}

// Get retrieves a user by ID. Soft-deleted users are treated as missing.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted() {
		return nil, store.ErrNotFound
	}
	return user, nil
}

// UpdateProfile edits a user's own profile and publishes a profile-change
// event so the leaderboard picks up display name changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.BookmarksEnabled != nil {
		user.BookmarksEnabled = *req.BookmarksEnabled
	}
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.bus.Publish(events.ContentChanged{
		Kind:      events.ProfileUpdated,
		ActorID:   userID,
		SubjectID: userID,
	})

	return user, nil
}

// AddBookmark appends a bookmark to the user's profile.
func (s *UserService) AddBookmark(ctx context.Context, userID string, req AddBookmarkRequest) (*domain.Bookmark, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.BookmarksEnabled {
		return nil, errors.Forbidden("bookmarks are disabled for this profile")
	}

	bookmarkID, err := id.Generate("bmk")
	if err != nil {
		return nil, fmt.Errorf("generate bookmark ID: %w", err)
	}

	bookmark := domain.Bookmark{
		ID:        bookmarkID,
		Title:     req.Title,
		Href:      req.Href,
		CreatedAt: time.Now().UTC(),
	}
	user.Bookmarks = append(user.Bookmarks, bookmark)
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &bookmark, nil
}

// RemoveBookmark deletes a bookmark from the user's profile.
func (s *UserService) RemoveBookmark(ctx context.Context, userID, bookmarkID string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if !user.RemoveBookmark(bookmarkID) {
		return errors.NotFound("bookmark not found")
	}
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Follow makes followerID follow targetID and notifies the target.
func (s *UserService) Follow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return errors.Validation("cannot follow yourself")
	}

	follower, err := s.Get(ctx, followerID)
	if err != nil {
		return err
	}
	target, err := s.Get(ctx, targetID)
	if err != nil {
		return err
	}

	if !follower.Follow(targetID) {
		// Already following, nothing to do.
		return nil
	}
	target.AddFollower(followerID)
	follower.Touch()
	target.Touch()

	if err := s.store.Users.Update(ctx, followerID, follower); err != nil {
		return fmt.Errorf("update follower: %w", err)
	}
	if err := s.store.Users.Update(ctx, targetID, target); err != nil {
		return fmt.Errorf("update target: %w", err)
	}

	if err := s.notifyFollow(ctx, follower, target); err != nil {
		// The follow itself succeeded; log and move on.
		if s.logger != nil {
			s.logger.Warn("failed to create follow notification",
				"follower_id", followerID,
				"target_id", targetID,
				"error", err,
			)
		}
	}

	return nil
}

// Unfollow removes a follow relationship.
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID string) error {
	follower, err := s.Get(ctx, followerID)
	if err != nil {
		return err
	}
	target, err := s.Get(ctx, targetID)
	if err != nil {
		return err
	}

	if !follower.Unfollow(targetID) {
		return nil
	}
	target.RemoveFollower(followerID)
	follower.Touch()
	target.Touch()

	if err := s.store.Users.Update(ctx, followerID, follower); err != nil {
		return fmt.Errorf("update follower: %w", err)
	}
	if err := s.store.Users.Update(ctx, targetID, target); err != nil {
		return fmt.Errorf("update target: %w", err)
	}
	return nil
}

func (s *UserService) notifyFollow(ctx context.Context, follower, target *domain.User) error {
	notificationID, err := id.Generate("ntf")
	if err != nil {
		return fmt.Errorf("generate notification ID: %w", err)
	}

	n := &domain.Notification{
		Record:      domain.Record{ID: notificationID},
		RecipientID: target.ID,
		SenderID:    follower.ID,
		Message:     follower.Name + " started following you",
		URL:         "/profile/" + follower.ID,
	}
	n.InitTimestamps()

	return s.store.CreateNotification(ctx, n)
}
