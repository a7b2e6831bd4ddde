package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

// Collection names reported for partial aggregation failures.
const (
	CollectionBookings       = "bookings"
	CollectionSessionNotes   = "session_notes"
	CollectionJournalEntries = "journal_entries"
	CollectionSubscriptions  = "subscriptions"
)

// BookingReader, NoteReader, JournalStore, and SubscriptionReader are the
// four owner-scoped collections the aggregator pulls together.
type BookingReader interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Booking, error)
}

type NoteReader interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.SessionNote, error)
}

type JournalStore interface {
	Insert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error)
}

type SubscriptionReader interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error)
}

// BookingView is a Booking plus its display label, resolved here so the
// presentation layer never interprets raw status values.
type BookingView struct {
	models.Booking
	StatusLabel string `json:"status_label"`
}

type SubscriptionView struct {
	models.Subscription
	StatusLabel string `json:"status_label"`
}

// DashboardView is the aggregate the client renders. Failed lists the
// collections whose reads failed; their slices stay empty instead of hiding
// the collections that did load.
type DashboardView struct {
	Bookings      []BookingView          `json:"bookings"`
	SessionNotes  []models.SessionNote   `json:"session_notes"`
	Journal       []models.JournalEntry  `json:"journal_entries"`
	Subscriptions []SubscriptionView     `json:"subscriptions"`
	Failed        []string               `json:"failed_collections,omitempty"`
}

// PartialFailure reports which collections could not be loaded. The view it
// accompanies still carries everything that did load.
type PartialFailure struct {
	Collections []string
}

func (e *PartialFailure) Error() string {
	return "failed to load: " + strings.Join(e.Collections, ", ")
}

// DashboardAggregator fetches the four owner-scoped collections concurrently
// and merges them into one view.
type DashboardAggregator struct {
	bookings      BookingReader
	notes         NoteReader
	journals      JournalStore
	subscriptions SubscriptionReader
	events        *EventHub
}

func NewDashboardAggregator(bookings BookingReader, notes NoteReader, journals JournalStore, subscriptions SubscriptionReader, events *EventHub) *DashboardAggregator {
	return &DashboardAggregator{
		bookings:      bookings,
		notes:         notes,
		journals:      journals,
		subscriptions: subscriptions,
		events:        events,
	}
}

// Load issues the four reads concurrently and waits for all of them. Each
// collection is filtered to the identity's rows and ordered by the store.
// When some reads fail the returned view keeps the successful collections and
// the error is a *PartialFailure naming the rest; the view is non-nil either
// way.
func (a *DashboardAggregator) Load(ctx context.Context, identity *models.Identity) (*DashboardView, error) {
	if identity == nil || identity.ID == uuid.Nil {
		return nil, common.ErrUnauthenticated
	}

	view := &DashboardView{
		Bookings:      []BookingView{},
		SessionNotes:  []models.SessionNote{},
		Journal:       []models.JournalEntry{},
		Subscriptions: []SubscriptionView{},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	failed := map[string]error{}

	fail := func(collection string, err error) {
		mu.Lock()
		failed[collection] = err
		mu.Unlock()
		log.Printf("dashboard: %s read failed for user %s: %v", collection, identity.ID, err)
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		bookings, err := a.bookings.ListByOwner(ctx, identity.ID)
		if err != nil {
			fail(CollectionBookings, err)
			return
		}
		views := make([]BookingView, 0, len(bookings))
		for _, b := range bookings {
			views = append(views, BookingView{Booking: b, StatusLabel: b.Status.Label()})
		}
		mu.Lock()
		view.Bookings = views
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		notes, err := a.notes.ListByOwner(ctx, identity.ID)
		if err != nil {
			fail(CollectionSessionNotes, err)
			return
		}
		mu.Lock()
		view.SessionNotes = notes
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		entries, err := a.journals.ListByOwner(ctx, identity.ID)
		if err != nil {
			fail(CollectionJournalEntries, err)
			return
		}
		mu.Lock()
		view.Journal = entries
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		subs, err := a.subscriptions.ListByOwner(ctx, identity.ID)
		if err != nil {
			fail(CollectionSubscriptions, err)
			return
		}
		views := make([]SubscriptionView, 0, len(subs))
		for _, s := range subs {
			views = append(views, SubscriptionView{Subscription: s, StatusLabel: s.Status.Label()})
		}
		mu.Lock()
		view.Subscriptions = views
		mu.Unlock()
	}()
	wg.Wait()

	if len(failed) > 0 {
		for collection := range failed {
			view.Failed = append(view.Failed, collection)
		}
		sort.Strings(view.Failed)
		return view, &PartialFailure{Collections: view.Failed}
	}
	return view, nil
}

// AppendJournalEntry validates and stores a new journal entry, then re-reads
// the owner's journal so ordering and timestamps stay server-authoritative.
// Blank content is rejected before any store call.
func (a *DashboardAggregator) AppendJournalEntry(ctx context.Context, identity *models.Identity, title, content string) (*models.JournalEntry, []models.JournalEntry, error) {
	if identity == nil || identity.ID == uuid.Nil {
		return nil, nil, common.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, nil, common.ErrEmptyContent
	}

	entry, err := a.journals.Insert(ctx, &models.JournalEntry{
		UserID:  identity.ID.String(),
		Title:   strings.TrimSpace(title),
		Content: content,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("inserting journal entry: %w", err)
	}

	entries, err := a.journals.ListByOwner(ctx, identity.ID)
	if err != nil {
		// The entry was written; surface it even though the refresh failed.
		return entry, nil, fmt.Errorf("re-reading journal: %w", err)
	}

	a.events.Publish(ctx, identity.ID, Event{Type: EventJournalSaved})
	return entry, entries, nil
}
