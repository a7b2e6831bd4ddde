package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/pkg/utils"
)

const (
	// AdminSessionDuration is 12 hours; staff sessions are shorter than client ones.
	AdminSessionDuration = 12 * time.Hour
	// AdminSessionKeyPrefix is the Redis key prefix for staff sessions
	AdminSessionKeyPrefix = "admin_session:"
)

// AdminStore is the staff account lookup the admin session service needs.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (uuid.UUID, string, error)
}

// AdminSessions authenticates practice staff. Staff accounts are created
// directly in the database; there is no admin signup endpoint.
type AdminSessions struct {
	admins AdminStore
	rdb    *redis.Client
}

func NewAdminSessions(admins AdminStore, rdb *redis.Client) *AdminSessions {
	return &AdminSessions{admins: admins, rdb: rdb}
}

// SignIn verifies staff credentials and mints an admin session token.
func (s *AdminSessions) SignIn(ctx context.Context, username, password string) (string, error) {
	adminID, passwordHash, err := s.admins.GetAdminByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return "", common.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	valid, err := utils.VerifyPassword(password, passwordHash)
	if err != nil || !valid {
		return "", common.ErrInvalidCredentials
	}

	token := newToken()
	if err := s.rdb.Set(ctx, AdminSessionKeyPrefix+token, adminID.String(), AdminSessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves an admin session token to the staff account ID.
func (s *AdminSessions) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, common.ErrUnauthenticated
	}
	idStr, err := s.rdb.Get(ctx, AdminSessionKeyPrefix+token).Result()
	if err != nil {
		return uuid.Nil, common.ErrUnauthenticated
	}
	adminID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, common.ErrUnauthenticated
	}
	return adminID, nil
}

// Invalidate removes an admin session.
func (s *AdminSessions) Invalidate(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.rdb.Del(ctx, AdminSessionKeyPrefix+token)
}
