package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus distinguishes active plans; every other stored value is
// presented with a neutral label.
type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// Label returns "active" for active subscriptions and the stored value for
// anything else, with "inactive" as the empty fallback.
func (s SubscriptionStatus) Label() string {
	if s == SubscriptionStatusActive {
		return "active"
	}
	if s == "" {
		return "inactive"
	}
	return string(s)
}

type Subscription struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	PlanName  string             `json:"plan_name"`
	Status    SubscriptionStatus `json:"status"`
	StartDate time.Time          `json:"start_date"`
	EndDate   *time.Time         `json:"end_date,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
