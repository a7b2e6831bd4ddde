package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionNote is written by the therapist after a session and is read-only
// for the client it belongs to.
type SessionNote struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SessionDate time.Time `json:"session_date"`
	Summary     string    `json:"summary,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
