package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
)

// ListPosts returns published blog post summaries, newest first.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Content.ListPublished(r.Context())
	if err != nil {
		log.Printf("blog list failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load articles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"posts":   posts,
	})
}

// GetPost returns a published post by slug. Drafts and unknown slugs both
// come back 404.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.Content.GetBySlug(r.Context(), slug)
	if errors.Is(err, common.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Article not found")
		return
	}
	if err != nil {
		log.Printf("blog get failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load article")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"post":    post,
	})
}
