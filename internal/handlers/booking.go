package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

type CreateBookingRequest struct {
	Service string `json:"service"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM, one of the fixed slots
	Notes   string `json:"notes,omitempty"`
}

// BookingOptions returns the fixed offerings the booking form renders:
// services, time slots, and the closed weekday.
func (h *Handlers) BookingOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"services":       services.OfferedServices,
		"time_slots":     services.TimeSlots,
		"closed_weekday": services.ClosedWeekday.String(),
	})
}

// CreateBooking submits a booking request for the signed-in client.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	booking, err := h.Booking.Submit(r.Context(), &identity, services.BookingRequest{
		Service: req.Service,
		Date:    date,
		Time:    req.Time,
		Notes:   req.Notes,
	})
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	case errors.Is(err, common.ErrInvalidService):
		respondError(w, http.StatusBadRequest, "Please choose one of the offered services")
		return
	case errors.Is(err, common.ErrIncompleteSelection):
		respondError(w, http.StatusBadRequest, "Please select a date, time, and service")
		return
	case errors.Is(err, common.ErrDateUnavailable):
		respondError(w, http.StatusBadRequest, "That date is not available for booking")
		return
	case errors.Is(err, common.ErrInvalidSlot):
		respondError(w, http.StatusBadRequest, "Please choose one of the offered time slots")
		return
	case errors.Is(err, common.ErrSubmissionInProgress):
		respondError(w, http.StatusConflict, "Your booking is already being submitted")
		return
	case err != nil:
		log.Printf("booking submit failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Booking failed. Your selections were kept; please try again.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Your session request has been sent. We'll confirm via email shortly.",
		"booking": booking,
	})
}
