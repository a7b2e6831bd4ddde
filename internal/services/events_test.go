package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub_LocalFanOut(t *testing.T) {
	hub := NewEventHub(nil)
	userID := uuid.New()
	other := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	defer cancel()
	otherCh, otherCancel := hub.Subscribe(other)
	defer otherCancel()

	hub.Publish(context.Background(), userID, Event{Type: EventBookingCreated, Status: "pending"})

	select {
	case evt := <-ch:
		assert.Equal(t, EventBookingCreated, evt.Type)
		assert.Equal(t, userID.String(), evt.UserID)
		assert.False(t, evt.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected an event for the owner")
	}

	// Events only reach the owner's subscribers.
	select {
	case <-otherCh:
		t.Fatal("other user should not receive the event")
	default:
	}
}

func TestEventHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewEventHub(nil)
	userID := uuid.New()

	ch, cancel := hub.Subscribe(userID)
	cancel()

	hub.Publish(context.Background(), userID, Event{Type: EventSignedOut})
	_, open := <-ch
	assert.False(t, open)
}

func TestEventHub_SlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewEventHub(nil)
	userID := uuid.New()

	_, cancel := hub.Subscribe(userID)
	defer cancel()

	// Nobody is draining the channel; publishing past its buffer must not
	// block the hub.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Publish(context.Background(), userID, Event{Type: EventJournalSaved})
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
}

func TestEventHub_NilHubIsSafe(t *testing.T) {
	var hub *EventHub
	require.NotPanics(t, func() {
		hub.Publish(context.Background(), uuid.New(), Event{Type: EventSignedIn})
		hub.StartSubscriber(context.Background())
	})
}
