package handlers

import (
	"net/http"

	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/services"
)

// AuthHandler serves owner registration, login and logout
type AuthHandler struct {
	auth    *services.AuthService
	session *middleware.SessionMiddleware
}

func NewAuthHandler(auth *services.AuthService, session *middleware.SessionMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, session: session}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an owner account and starts a session
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.session.Login(w, r, user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// Login verifies credentials and starts a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.session.Login(w, r, user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

type updateEmailRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
}

// UpdateEmail changes the logged-in owner's email
func (h *AuthHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req updateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.UpdateEmail(r.Context(), userID, req.Email, req.CurrentPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdatePassword changes the logged-in owner's password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Logout ends the owner session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(w, r); err != nil {
		respondError(w, http.StatusInternalServerError, "could not end session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
