package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
)

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new client account. The account stays pending until the
// emailed verification link is opened.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.Sessions.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	switch {
	case errors.Is(err, common.ErrEmailInUse):
		respondError(w, http.StatusConflict, "Email is already registered")
		return
	case errors.Is(err, common.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	case errors.Is(err, common.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "A valid email address is required")
		return
	case err != nil:
		log.Printf("signup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// The verification email is sent out of band; the token is logged so
	// operators can resend a link manually if delivery fails.
	log.Printf("verification token issued for %s: %s", req.Email, token)

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Check your email for a verification link to activate your account.",
	})
}

// Verify activates an account from the emailed verification link.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if err := h.Sessions.Verify(r.Context(), token); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Verification link is invalid or has expired")
			return
		}
		log.Printf("verification failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to verify account")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email verified. You can sign in now.",
	})
}

// Signin checks credentials and returns a session token plus the identity.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	identity, token, err := h.Sessions.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case errors.Is(err, common.ErrEmailNotVerified):
		respondError(w, http.StatusForbidden, "Please verify your email before signing in")
		return
	case errors.Is(err, common.ErrAccountInactive):
		respondError(w, http.StatusForbidden, "Account is inactive")
		return
	case err != nil:
		log.Printf("signin failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Signed in",
		"token":   token,
		"user":    identity,
	})
}

// Signout clears the session. It always reports success: the local session is
// gone even if Redis misbehaved.
func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	h.Sessions.SignOut(r.Context(), token)

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Signed out",
	})
}

// Me resolves the current session to its identity. The frontend calls this on
// load to decide whether route-gated pages may render.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    identity,
	})
}
