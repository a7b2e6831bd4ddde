package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

type Subscriptions struct {
	db *sql.DB
}

func NewSubscriptions(db *sql.DB) *Subscriptions {
	return &Subscriptions{db: db}
}

// ListByOwner returns a client's care plan subscriptions, newest start date
// first. Subscriptions are written by billing, outside this service.
func (r *Subscriptions) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plan_name, status, start_date, end_date, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY start_date DESC, created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var s models.Subscription
		var rawStatus string
		var endDate sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanName, &rawStatus, &s.StartDate, &endDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Status = models.SubscriptionStatus(rawStatus)
		if endDate.Valid {
			s.EndDate = &endDate.Time
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
