// Package repository contains the Postgres and MongoDB persistence layer.
// Each repository owns one record collection; services depend on the small
// interfaces they declare, not on these concrete types.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create inserts a new, unverified user account.
func (r *Users) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, email_verified, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	`, u.ID, strings.ToLower(u.Email), u.PasswordHash, u.DisplayName, u.EmailVerified, u.CreatedAt)
	return err
}

// GetByEmail looks up a user by email, case-insensitively.
func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, email_verified, is_active, created_at
		FROM users WHERE LOWER(email) = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.EmailVerified, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, email_verified, is_active, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.EmailVerified, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateVerificationToken stores a one-time email verification token.
func (r *Users) CreateVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_tokens (id, user_id, token, expires_at, used, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, FALSE, NOW())
	`, userID, token, expiresAt)
	return err
}

// ConsumeVerificationToken marks an unused, unexpired token as used and flips
// the owner's email_verified flag. Returns the owner's ID, or ErrNotFound for
// an invalid, used, or expired token.
func (r *Users) ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		UPDATE verification_tokens SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > NOW()
		RETURNING user_id
	`, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return uuid.Nil, common.ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET email_verified = TRUE WHERE id = $1`, userID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// GetAdminByUsername looks up an active staff account for the admin sign-in.
func (r *Users) GetAdminByUsername(ctx context.Context, username string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var passwordHash string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins
		WHERE LOWER(username) = $1 AND is_active = TRUE
	`, strings.ToLower(strings.TrimSpace(username))).Scan(&id, &passwordHash)
	if err == sql.ErrNoRows {
		return uuid.Nil, "", common.ErrNotFound
	}
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, passwordHash, nil
}
