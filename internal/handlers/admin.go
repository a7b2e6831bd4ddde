package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

type AdminSigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminSignin authenticates practice staff.
func (h *Handlers) AdminSignin(w http.ResponseWriter, r *http.Request) {
	var req AdminSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.AdminAuth.SignIn(r.Context(), req.Username, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		log.Printf("admin signin failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Signed in",
		"token":   token,
	})
}

// AdminListBookings returns every booking request for staff review.
func (h *Handlers) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	bookings, err := h.AdminBookings.ListAll(r.Context())
	if err != nil {
		log.Printf("admin booking list failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"bookings": bookings,
	})
}

type UpdateBookingStatusRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// AdminUpdateBookingStatus moves a booking to a new status and notifies the
// owner's dashboard.
func (h *Handlers) AdminUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}
	status := models.ParseBookingStatus(req.Status)
	if status == models.BookingStatusUnknown {
		respondError(w, http.StatusBadRequest, "Status must be pending, approved, declined, or cancelled")
		return
	}

	booking, err := h.AdminBookings.UpdateStatus(r.Context(), id, status, req.AdminNotes)
	if errors.Is(err, common.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		log.Printf("booking status update failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	h.Events.Publish(r.Context(), booking.UserID, services.Event{
		Type:      services.EventBookingStatusChanged,
		BookingID: booking.ID.String(),
		Status:    booking.Status.Label(),
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Booking updated",
		"booking": booking,
	})
}

type CreateSessionNoteRequest struct {
	UserID      string `json:"user_id"`
	SessionDate string `json:"session_date"` // YYYY-MM-DD
	Summary     string `json:"summary,omitempty"`
	Notes       string `json:"notes"`
}

// AdminCreateSessionNote shares a therapist note with a client.
func (h *Handlers) AdminCreateSessionNote(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req CreateSessionNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Session date must be in YYYY-MM-DD format")
		return
	}
	if strings.TrimSpace(req.Notes) == "" {
		respondError(w, http.StatusBadRequest, "Notes are required")
		return
	}

	note, err := h.Notes.Insert(r.Context(), &models.SessionNote{
		UserID:      userID,
		SessionDate: sessionDate,
		Summary:     strings.TrimSpace(req.Summary),
		Notes:       req.Notes,
	})
	if err != nil {
		log.Printf("session note insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save session note")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Session note saved",
		"note":    note,
	})
}

type CreatePostRequest struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	Content       string `json:"content"`
}

// AdminCreatePost creates a draft blog post.
func (h *Handlers) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	slug := slugify(req.Slug)
	if slug == "" {
		slug = slugify(req.Title)
	}
	if slug == "" {
		respondError(w, http.StatusBadRequest, "A slug could not be derived from the title")
		return
	}

	post, err := h.Posts.Insert(r.Context(), &models.Article{
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Excerpt:       strings.TrimSpace(req.Excerpt),
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
		Content:       req.Content,
	})
	if err != nil {
		log.Printf("post insert failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Draft created",
		"post":    post,
	})
}

type PublishPostRequest struct {
	ID        string `json:"id"`
	Published bool   `json:"published"`
}

// AdminPublishPost publishes or unpublishes a post.
func (h *Handlers) AdminPublishPost(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req PublishPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := h.Posts.SetPublished(r.Context(), id, req.Published); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("post publish failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Post updated",
	})
}

// AdminUploadCover uploads a blog cover image to Cloudinary and returns its URL.
func (h *Handlers) AdminUploadCover(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if h.Uploads == nil {
		respondError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	file.Close()

	url, err := h.Uploads.UploadCoverImage(r.Context(), fileHeader)
	if err != nil {
		log.Printf("cover upload failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image uploaded",
		"url":     url,
	})
}

// slugify lowercases a title and keeps [a-z0-9-], collapsing runs of other
// characters into single hyphens.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
