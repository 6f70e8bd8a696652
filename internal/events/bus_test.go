package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := bus.Subscribe(ctx)
	second := bus.Subscribe(ctx)
	require.Equal(t, 2, bus.SubscriberCount())

	published := NewEvent(TypeMatchCreated, []string{"alice", "bob"}, map[string]interface{}{"match_id": int64(1)})
	bus.Publish(published)

	for _, ch := range []<-chan Event{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, published.ID, got.ID)
			assert.Equal(t, TypeMatchCreated, got.Type)
			assert.Equal(t, []string{"alice", "bob"}, got.UserIDs)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Nobody drains this subscriber
	bus.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			bus.Publish(NewEvent(TypeSwipeRecorded, []string{"alice"}, nil))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBusUnsubscribeOnContextCancel(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())

	ch := bus.Subscribe(ctx)
	require.Equal(t, 1, bus.SubscriberCount())

	cancel()

	// The channel closes once the cleanup goroutine runs
	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed after cancellation")
	}
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not panic or block
	bus.Publish(NewEvent(TypeMessageSent, []string{"alice"}, nil))
	assert.Equal(t, 0, bus.SubscriberCount())
}
