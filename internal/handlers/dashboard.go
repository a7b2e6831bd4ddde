package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

type CreateJournalRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// GetDashboard loads the four owner-scoped collections for the signed-in
// client. A partial failure still returns the collections that loaded, with
// the failed ones named, so the page degrades per section instead of going
// blank.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	view, err := h.Dashboard.Load(r.Context(), &identity)
	if err != nil {
		var partial *services.PartialFailure
		if !errors.As(err, &partial) {
			log.Printf("dashboard load failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
		// Partial result: fall through with the view we got.
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"dashboard": view,
	})
}

// CreateJournal appends a journal entry for the signed-in client and returns
// the refreshed, server-ordered journal list.
func (h *Handlers) CreateJournal(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, entries, err := h.Dashboard.AppendJournalEntry(r.Context(), &identity, req.Title, req.Content)
	switch {
	case errors.Is(err, common.ErrEmptyContent):
		respondError(w, http.StatusBadRequest, "Journal content is required")
		return
	case err != nil && entry == nil:
		log.Printf("journal append failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	case err != nil:
		// Entry saved but the refresh read failed; return what we have.
		log.Printf("journal refresh failed: %v", err)
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"message":         "Journal saved",
		"journal":         entry,
		"journal_entries": entries,
	})
}
