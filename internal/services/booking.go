package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

// BookingStore is the persistence the booking service needs.
type BookingStore interface {
	Insert(ctx context.Context, b *models.Booking) (*models.Booking, error)
}

// BookingService validates booking requests against the availability policy
// and submits each one exactly once. A per-owner in-flight guard rejects a
// second submission while the first is still pending, so a double-click never
// produces two rows.
type BookingService struct {
	store  BookingStore
	events *EventHub
	now    func() time.Time

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

func NewBookingService(store BookingStore, events *EventHub) *BookingService {
	return &BookingService{
		store:    store,
		events:   events,
		now:      time.Now,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// BookingRequest carries the client's selections. Date is the zero value when
// no date was chosen.
type BookingRequest struct {
	Service string
	Date    time.Time
	Time    string
	Notes   string
}

// Submit validates and stores a booking request with status pending.
//
// Preconditions are checked in order, first failure wins: authenticated,
// known service, date and time both present, date bookable, time in the slot
// set. Validation failures never reach the store. Concurrent submissions
// from the same owner get ErrSubmissionInProgress rather than being queued;
// the guard is released on every exit path, including store failure, so the
// owner can always retry.
//
// Two different owners may book the same date and time; the service does not
// claim slot exclusivity across users.
func (s *BookingService) Submit(ctx context.Context, identity *models.Identity, req BookingRequest) (*models.Booking, error) {
	if identity == nil || identity.ID == uuid.Nil {
		return nil, common.ErrUnauthenticated
	}
	if !IsOfferedService(req.Service) {
		return nil, common.ErrInvalidService
	}
	if req.Date.IsZero() || req.Time == "" {
		return nil, common.ErrIncompleteSelection
	}
	if !IsBookable(req.Date, s.now()) {
		return nil, common.ErrDateUnavailable
	}
	if !IsValidSlot(req.Time) {
		return nil, common.ErrInvalidSlot
	}

	if !s.acquire(identity.ID) {
		return nil, common.ErrSubmissionInProgress
	}
	defer s.release(identity.ID)

	booking, err := s.store.Insert(ctx, &models.Booking{
		UserID:      identity.ID,
		Service:     req.Service,
		BookingDate: req.Date,
		BookingTime: req.Time,
		Status:      models.BookingStatusPending,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting booking: %w", err)
	}

	s.events.Publish(ctx, identity.ID, Event{
		Type:      EventBookingCreated,
		BookingID: booking.ID.String(),
		Status:    booking.Status.Label(),
	})
	return booking, nil
}

func (s *BookingService) acquire(ownerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[ownerID]; busy {
		return false
	}
	s.inflight[ownerID] = struct{}{}
	return true
}

func (s *BookingService) release(ownerID uuid.UUID) {
	s.mu.Lock()
	delete(s.inflight, ownerID)
	s.mu.Unlock()
}
