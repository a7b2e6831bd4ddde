package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event types pushed to a signed-in client's dashboard connection.
const (
	EventSignedIn             = "signed_in"
	EventSignedOut            = "signed_out"
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
	EventJournalSaved         = "journal_saved"
)

// Event is the payload broadcast over Redis and WebSocket to the owning user.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	BookingID string    `json:"booking_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const dashboardChannelPrefix = "dashboard:user:"

// EventHub fans dashboard events out to the owner's local WebSocket
// subscribers and relays them across instances via Redis pub/sub. A nil
// *EventHub is valid and drops everything, so services can run without one
// in tests.
type EventHub struct {
	rdb *redis.Client

	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan Event]struct{}

	started sync.Once
}

func NewEventHub(rdb *redis.Client) *EventHub {
	return &EventHub{
		rdb:  rdb,
		subs: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one user's events. The returned cancel
// func must be called when the connection goes away.
func (h *EventHub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish sends an event to the owner. With Redis available it goes through
// pub/sub so every instance sees it; otherwise it fans out locally.
func (h *EventHub) Publish(ctx context.Context, userID uuid.UUID, event Event) {
	if h == nil {
		return
	}
	event.UserID = userID.String()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if h.rdb != nil {
		data, err := json.Marshal(event)
		if err == nil {
			if err := h.rdb.Publish(ctx, dashboardChannelPrefix+userID.String(), data).Err(); err == nil {
				return
			}
			log.Printf("dashboard event publish failed, falling back to local fan-out")
		}
	}

	h.fanOut(userID, event)
}

func (h *EventHub) fanOut(userID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
			// Slow consumer; drop rather than block the hub.
		}
	}
}

// StartSubscriber starts the single shared Redis listener for this instance.
func (h *EventHub) StartSubscriber(ctx context.Context) {
	if h == nil || h.rdb == nil {
		return
	}
	h.started.Do(func() {
		go h.runSubscriber(ctx)
	})
}

func (h *EventHub) runSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := h.rdb.PSubscribe(ctx, dashboardChannelPrefix+"*")
			defer pubsub.Close()

			log.Println("✅ Dashboard event subscriber started (pattern: dashboard:user:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("dashboard event subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal dashboard event: %v", err)
					continue
				}

				userID, err := uuid.Parse(event.UserID)
				if err != nil {
					continue
				}
				h.fanOut(userID, event)
			}
		}()
	}
}
