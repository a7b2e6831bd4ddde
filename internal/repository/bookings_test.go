package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

func TestBookingsInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	createdAt := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(userID, "Anxiety Support", date, "10:00", "pending", "first visit").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), createdAt))

	repo := NewBookings(db)
	booking, err := repo.Insert(context.Background(), &models.Booking{
		UserID:      userID,
		Service:     "Anxiety Support",
		BookingDate: date,
		BookingTime: "10:00",
		Status:      models.BookingStatusPending,
		Notes:       "first visit",
	})
	require.NoError(t, err)
	assert.Equal(t, id, booking.ID)
	assert.Equal(t, createdAt, booking.CreatedAt)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingsListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ownerID := uuid.New()
	newer := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "service", "booking_date", "booking_time", "status", "notes", "admin_notes", "created_at",
	}).
		AddRow(uuid.NewString(), ownerID.String(), "Anxiety Support", newer, "10:00", "approved", "", "see you then", time.Now()).
		AddRow(uuid.NewString(), ownerID.String(), "Family Therapy", older, "14:30", "rescheduled", "prefers afternoons", "", time.Now())

	mock.ExpectQuery("SELECT id, user_id, service").
		WithArgs(ownerID).
		WillReturnRows(rows)

	repo := NewBookings(db)
	bookings, err := repo.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, newer, bookings[0].BookingDate)
	assert.Equal(t, models.BookingStatusApproved, bookings[0].Status)
	// Stored values outside the enum degrade to the unknown status instead of
	// failing the whole read.
	assert.Equal(t, models.BookingStatusUnknown, bookings[1].Status)
	assert.Equal(t, "unknown", bookings[1].Status.Label())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingsListByOwner_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ownerID := uuid.New()
	mock.ExpectQuery("SELECT id, user_id, service").
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "service", "booking_date", "booking_time", "status", "notes", "admin_notes", "created_at",
		}))

	repo := NewBookings(db)
	bookings, err := repo.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingsUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	ownerID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs(id, "approved", "confirmed by phone").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "service", "booking_date", "booking_time", "status", "notes", "admin_notes", "created_at",
		}).AddRow(id.String(), ownerID.String(), "Anxiety Support", date, "10:00", "approved", "", "confirmed by phone", time.Now()))

	repo := NewBookings(db)
	booking, err := repo.UpdateStatus(context.Background(), id, models.BookingStatusApproved, "confirmed by phone")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, booking.Status)
	assert.Equal(t, "confirmed by phone", booking.AdminNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingsUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs(id, "declined", "").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "service", "booking_date", "booking_time", "status", "notes", "admin_notes", "created_at",
		}))

	repo := NewBookings(db)
	_, err = repo.UpdateStatus(context.Background(), id, models.BookingStatusDeclined, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
