package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Never returned in JSON
	DisplayName   string    `json:"display_name"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Identity is the authenticated principal on whose behalf booking and
// dashboard operations run. It is produced by the session service and passed
// by value to every owner-scoped operation; the ID is the ownership key for
// all per-user queries.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Identity derives the request-scoped principal from a user row.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
