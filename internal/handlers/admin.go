package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

// AdminHandler administers platform fees. Access is guarded by a static
// operator token, there is no admin UI.
type AdminHandler struct {
	settings *services.SettingsService
	token    string
}

func NewAdminHandler(settings *services.SettingsService, token string) *AdminHandler {
	return &AdminHandler{settings: settings, token: token}
}

// RequireToken guards admin routes with the operator token
func (h *AdminHandler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("X-Admin-Token")
		if h.token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) != 1 {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSettings returns the platform fee configuration
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial fee configuration update
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settings.Update(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

type customFeeRequest struct {
	FeePercentage *float64 `json:"fee_percentage"`
}

// SetCustomFee sets or clears an event's fee override. A null fee restores
// the platform default; an explicit zero waives the fee entirely.
func (h *AdminHandler) SetCustomFee(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req customFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.SetCustomFee(r.Context(), eventID, req.FeePercentage); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
