package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// NotificationService handles a user's notification inbox.
type NotificationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(s *store.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		store:  s,
		logger: logger,
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications, err := s.store.ListNotificationsByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}

// MarkRead marks a single notification as read. Users can only mark their
// own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.store.Notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != userID {
		return errors.Forbidden("notification belongs to another user")
	}
	if n.Read {
		return nil
	}

	n.Read = true
	n.Touch()

	if err := s.store.Notifications.Update(ctx, notificationID, n); err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification in the user's inbox as read.
// Returns the number of notifications updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	notifications, err := s.store.ListNotificationsByRecipient(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, n := range notifications {
		if n.Read {
			continue
		}
		n.Read = true
		n.Touch()
		if err := s.store.Notifications.Update(ctx, n.ID, n); err != nil {
			return updated, fmt.Errorf("update notification %s: %w", n.ID, err)
		}
		updated++
	}

	return updated, nil
}
