// Package handlers implements the JSON API over the portal services. Every
// response uses the {success, message, ...} envelope the frontend expects.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

// AdminBookingStore is the staff-side booking access.
type AdminBookingStore interface {
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, adminNotes string) (*models.Booking, error)
}

// NoteWriter creates therapist session notes.
type NoteWriter interface {
	Insert(ctx context.Context, n *models.SessionNote) (*models.SessionNote, error)
}

// PostAdminStore is the staff-side blog access.
type PostAdminStore interface {
	Insert(ctx context.Context, a *models.Article) (*models.Article, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
}

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	Sessions  *services.SessionService
	AdminAuth *services.AdminSessions
	Booking   *services.BookingService
	Dashboard *services.DashboardAggregator
	Content   *services.ContentService
	Events    *services.EventHub
	Uploads   *services.CloudinaryService // nil when Cloudinary isn't configured

	AdminBookings AdminBookingStore
	Notes         NoteWriter
	Posts         PostAdminStore
}

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// identity resolves the request's session token to an Identity, or returns
// false after writing a 401.
func (h *Handlers) identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	identity, err := h.Sessions.Current(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return models.Identity{}, false
	}
	return identity, true
}

// requireAdmin validates the staff session token, or returns false after
// writing a 401.
func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if _, err := h.AdminAuth.Validate(r.Context(), token); err != nil {
		respondError(w, http.StatusUnauthorized, "Admin authentication required")
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
