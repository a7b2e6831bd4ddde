package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the closed set of booking states. Staff move bookings
// between states; clients only ever create pending ones. Anything else read
// back from the store degrades to BookingStatusUnknown instead of failing.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusUnknown   BookingStatus = ""
)

// ParseBookingStatus maps a stored status string onto the closed enum,
// returning BookingStatusUnknown for unrecognized values.
func ParseBookingStatus(s string) BookingStatus {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusApproved, BookingStatusDeclined, BookingStatusCancelled:
		return BookingStatus(s)
	}
	return BookingStatusUnknown
}

// Label returns the display label for the status. Unknown statuses get a
// neutral label rather than an error.
func (s BookingStatus) Label() string {
	switch s {
	case BookingStatusPending:
		return "pending"
	case BookingStatusApproved:
		return "approved"
	case BookingStatusDeclined:
		return "declined"
	case BookingStatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Service     string        `json:"service"`
	BookingDate time.Time     `json:"booking_date"`
	BookingTime string        `json:"booking_time"`
	Status      BookingStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	AdminNotes  string        `json:"admin_notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
