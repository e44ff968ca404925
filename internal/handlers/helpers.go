package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gift-registry-platform/internal/models"
)

// checkoutErrorMessage is the error text guests see when the payment flow
// fails for provider or internal reasons. The cause is logged, not exposed.
const checkoutErrorMessage = "could not process your order"

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP responses. Unknown
// errors are logged and answered generically.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrGiftNotFound),
		errors.Is(err, models.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrRSVPDisabled):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateSlug):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrOwnerNotConfigured):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
