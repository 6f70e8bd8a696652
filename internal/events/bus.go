// internal/events/bus.go
// In-process change notifications. Consumers (the chat relay, future
// badge counters) subscribe to an event stream instead of the core
// calling them back directly.

package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	TypeSwipeRecorded EventType = "swipe_recorded"
	TypeMatchCreated  EventType = "match_created"
	TypeMessageSent   EventType = "message_sent"
)

// Event is one change notification. UserIDs lists the users the event
// concerns; payload content is event-type specific.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	UserIDs   []string               `json:"user_ids"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent builds an event with a fresh ID and current timestamp
func NewEvent(eventType EventType, userIDs []string, payload map[string]interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserIDs:   userIDs,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

const subscriberBuffer = 64

// Bus fans events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event rather than
// stalling the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]chan Event)}
}

// Subscribe returns a channel of events. The subscription is removed
// and the channel closed when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing)
		}
		b.mu.Unlock()
	}()

	return ch
}

// Publish delivers the event to every live subscriber
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop
		}
	}
}

// SubscriberCount reports the number of live subscriptions
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
