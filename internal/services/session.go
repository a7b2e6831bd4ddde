package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/pkg/utils"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
	// VerificationTokenTTL bounds how long a signup verification link stays valid
	VerificationTokenTTL = 48 * time.Hour

	minPasswordLength = 8
)

// UserStore is the account storage the session service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionService owns the authentication lifecycle: sign-up with email
// verification, sign-in minting a Redis-backed session token, sign-out, and
// resolving a token back to an Identity. Session changes are announced on the
// event hub so connected dashboards hear about them.
type SessionService struct {
	users  UserStore
	rdb    *redis.Client
	events *EventHub
}

func NewSessionService(users UserStore, rdb *redis.Client, events *EventHub) *SessionService {
	return &SessionService{users: users, rdb: rdb, events: events}
}

// SignUp registers a new account. The account stays unverified (and cannot
// sign in) until the returned verification token is redeemed.
func (s *SessionService) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", common.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return "", common.ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", common.ErrEmailInUse
	} else if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("looking up email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	token := newToken()
	if err := s.users.CreateVerificationToken(ctx, user.ID, token, time.Now().Add(VerificationTokenTTL)); err != nil {
		return "", fmt.Errorf("creating verification token: %w", err)
	}
	return token, nil
}

// Verify redeems a signup verification token and activates the account.
func (s *SessionService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return common.ErrNotFound
	}
	_, err := s.users.ConsumeVerificationToken(ctx, token)
	return err
}

// SignIn checks credentials and mints a session token. An existing session
// for the user is invalidated first so the expiry timer restarts.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (models.Identity, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return models.Identity{}, "", common.ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("looking up user: %w", err)
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		return models.Identity{}, "", common.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return models.Identity{}, "", common.ErrEmailNotVerified
	}
	if !user.IsActive {
		return models.Identity{}, "", common.ErrAccountInactive
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("creating session: %w", err)
	}

	identity := user.Identity()
	s.events.Publish(ctx, user.ID, Event{Type: EventSignedIn})
	return identity, token, nil
}

// Current resolves a session token to the authenticated Identity. Expired or
// unknown tokens are ErrUnauthenticated.
func (s *SessionService) Current(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, common.ErrUnauthenticated
	}

	userIDStr, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return models.Identity{}, common.ErrUnauthenticated
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return models.Identity{}, common.ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Identity{}, common.ErrUnauthenticated
	}
	return user.Identity(), nil
}

// SignOut clears the session. It always succeeds from the caller's point of
// view: Redis failures are logged, not surfaced, so a user-initiated sign-out
// never leaves the client stuck authenticated.
func (s *SessionService) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}

	sessionKey := SessionKeyPrefix + token
	userIDStr, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		if userID, parseErr := uuid.Parse(userIDStr); parseErr == nil {
			defer s.events.Publish(ctx, userID, Event{Type: EventSignedOut})
		}
		if err := s.rdb.Del(ctx, UserSessionKeyPrefix+userIDStr).Err(); err != nil {
			log.Printf("sign-out: failed to delete user session mapping: %v", err)
		}
	}
	if err := s.rdb.Del(ctx, sessionKey).Err(); err != nil {
		log.Printf("sign-out: failed to delete session: %v", err)
	}
}

// createSession stores a fresh token in Redis with the 7-day TTL, replacing
// any session the user already had.
func (s *SessionService) createSession(ctx context.Context, userID uuid.UUID) (string, error) {
	userSessionKey := UserSessionKeyPrefix + userID.String()

	// Invalidate any existing session for this user
	if old, err := s.rdb.Get(ctx, userSessionKey).Result(); err == nil && old != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+old)
	}

	token := newToken()
	if err := s.rdb.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, userSessionKey, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func newToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
