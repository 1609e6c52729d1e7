// Package sse implements Server-Sent Events for real-time leaderboard and
// notification delivery.
package sse

import (
	"time"

	"github.com/campusconnect/campusconnect-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventLeaderboardUpdated carries a fresh leaderboard snapshot.
	// Broadcast to every connected client once per cycle.
	EventLeaderboardUpdated EventType = "leaderboard.updated"

	// EventNotificationCreated is sent to the recipient of a new notification.
	EventNotificationCreated EventType = "notification.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserID filters delivery to a specific user. Empty string means
	// broadcast to all. Not sent to clients.
	UserID string `json:"-"`
}

// LeaderboardEventData is the data payload for leaderboard events.
// Entries are already ranked; position implies rank.
type LeaderboardEventData struct {
	ComputedAt time.Time          `json:"computed_at"`
	Entries    []domain.StatEntry `json:"entries"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NotificationEventData is the data payload for notification events.
type NotificationEventData struct {
	Notification *domain.Notification `json:"notification"`
}

// NewLeaderboardUpdatedEvent creates a leaderboard.updated event from a snapshot.
func NewLeaderboardUpdatedEvent(snapshot *domain.Snapshot) Event {
	return Event{
		Type:      EventLeaderboardUpdated,
		Timestamp: time.Now().UTC(),
		Data: LeaderboardEventData{
			ComputedAt: snapshot.ComputedAt,
			Entries:    snapshot.Entries,
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now().UTC()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}

// NewNotificationEvent creates a notification.created event addressed to the
// notification's recipient.
func NewNotificationEvent(n *domain.Notification) Event {
	return Event{
		Type:      EventNotificationCreated,
		Timestamp: time.Now().UTC(),
		UserID:    n.RecipientID,
		Data:      NotificationEventData{Notification: n},
	}
}
