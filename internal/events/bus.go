// Package events provides an in-process content-change bus.
//
// Services publish a ContentChanged event whenever posts or profiles mutate;
// the leaderboard service subscribes and recomputes. Publish is non-blocking:
// a subscriber whose buffer is full misses the event, which is acceptable
// because the next cycle recomputes from the store anyway.
package events

import (
	"sync"
	"time"
)

// Kind identifies the type of content mutation.
type Kind string

// Content mutation kinds that trigger a leaderboard recomputation.
const (
	PostCreated    Kind = "post.created"
	PostUpdated    Kind = "post.updated"
	PostDeleted    Kind = "post.deleted"
	ProfileUpdated Kind = "profile.updated"
)

// ContentChanged describes a single content mutation.
type ContentChanged struct {
	Kind       Kind
	ActorID    string
	SubjectID  string
	OccurredAt time.Time
}

// Bus fans ContentChanged events out to subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan ContentChanged
	nextID int
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan ContentChanged),
	}
}

// Subscribe registers a new subscriber with the given channel buffer size.
// The returned cancel function removes the subscription and closes the
// channel; it is safe to call more than once.
func (b *Bus) Subscribe(buffer int) (<-chan ContentChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ContentChanged, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// Publish delivers an event to all subscribers without blocking.
// Subscribers with a full buffer miss the event.
func (b *Bus) Publish(ev ContentChanged) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is behind, drop the event for them.
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
