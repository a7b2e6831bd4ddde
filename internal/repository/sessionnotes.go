package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

type SessionNotes struct {
	db *sql.DB
}

func NewSessionNotes(db *sql.DB) *SessionNotes {
	return &SessionNotes{db: db}
}

// ListByOwner returns a client's session notes, newest session first.
func (r *SessionNotes) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.SessionNote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, session_date, COALESCE(summary, ''), notes, created_at
		FROM session_notes
		WHERE user_id = $1
		ORDER BY session_date DESC, created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.SessionNote{}
	for rows.Next() {
		var n models.SessionNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.SessionDate, &n.Summary, &n.Notes, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Insert stores a therapist-authored note for a client.
func (r *SessionNotes) Insert(ctx context.Context, n *models.SessionNote) (*models.SessionNote, error) {
	out := *n
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO session_notes (user_id, session_date, summary, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, created_at
	`, n.UserID, n.SessionDate, n.Summary, n.Notes).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
