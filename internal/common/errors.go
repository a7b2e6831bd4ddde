// Package common defines shared sentinel errors used across handler, service,
// and repository layers. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAccountInactive    = errors.New("account is inactive")

	// Booking errors, checked in precondition order by the booking service.
	ErrUnauthenticated      = errors.New("authentication required")
	ErrInvalidService       = errors.New("unknown service")
	ErrIncompleteSelection  = errors.New("date and time are required")
	ErrDateUnavailable      = errors.New("date is not available for booking")
	ErrInvalidSlot          = errors.New("time is not an offered slot")
	ErrSubmissionInProgress = errors.New("a booking submission is already in progress")

	// Journal errors.
	ErrEmptyContent = errors.New("journal content is empty")
)
