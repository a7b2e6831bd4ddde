package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

type Bookings struct {
	db *sql.DB
}

func NewBookings(db *sql.DB) *Bookings {
	return &Bookings{db: db}
}

// Insert stores a new booking request and returns it with the server-assigned
// id and creation timestamp.
func (r *Bookings) Insert(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	out := *b
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bookings (user_id, service, booking_date, booking_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at
	`, b.UserID, b.Service, b.BookingDate, b.BookingTime, string(b.Status), b.Notes).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByOwner returns a user's bookings, newest booking date first.
func (r *Bookings) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, service, booking_date, booking_time, status,
		       COALESCE(notes, ''), COALESCE(admin_notes, ''), created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListAll returns every booking for the staff review screen, newest first.
func (r *Bookings) ListAll(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, service, booking_date, booking_time, status,
		       COALESCE(notes, ''), COALESCE(admin_notes, ''), created_at
		FROM bookings
		ORDER BY booking_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// UpdateStatus moves a booking to a new status and records the staff note.
func (r *Bookings) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, adminNotes string) (*models.Booking, error) {
	var b models.Booking
	var rawStatus string
	err := r.db.QueryRowContext(ctx, `
		UPDATE bookings SET status = $2, admin_notes = NULLIF($3, '')
		WHERE id = $1
		RETURNING id, user_id, service, booking_date, booking_time, status,
		          COALESCE(notes, ''), COALESCE(admin_notes, ''), created_at
	`, id, string(status), adminNotes).Scan(
		&b.ID, &b.UserID, &b.Service, &b.BookingDate, &b.BookingTime, &rawStatus,
		&b.Notes, &b.AdminNotes, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Status = models.ParseBookingStatus(rawStatus)
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var rawStatus string
		if err := rows.Scan(&b.ID, &b.UserID, &b.Service, &b.BookingDate, &b.BookingTime,
			&rawStatus, &b.Notes, &b.AdminNotes, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Status = models.ParseBookingStatus(rawStatus)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
