package store

import (
	"context"
	"fmt"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/sse"
)

// CreateNotification stores a notification and pushes it to the recipient's
// SSE stream.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if err := s.Notifications.Create(ctx, n.ID, n); err != nil {
		return err
	}
	if s.eventEmitter != nil {
		s.eventEmitter.Emit(sse.NewNotificationEvent(n))
	}
	return nil
}

// ListNotificationsByRecipient returns all notifications for a user.
func (s *Store) ListNotificationsByRecipient(ctx context.Context, userID string) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	for n, err := range s.Notifications.ListByIndex(ctx, "recipient", userID) {
		if err != nil {
			return nil, fmt.Errorf("list notifications: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
