package handlers

import (
	"errors"
	"log"
	"net/http"

	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

// PaymentHandler exposes the account-linking flow and guest checkout
type PaymentHandler struct {
	connect  *services.ConnectService
	checkout *services.CheckoutService
}

func NewPaymentHandler(connect *services.ConnectService, checkout *services.CheckoutService) *PaymentHandler {
	return &PaymentHandler{connect: connect, checkout: checkout}
}

// CreateConnectLink returns the OAuth consent URL for the logged-in owner
func (h *PaymentHandler) CreateConnectLink(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	url, err := h.connect.LinkURL(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"authUrl": url})
}

// Callback completes the OAuth round-trip. The provider redirects here with
// the authorization code and the owner id in state; the owner always lands
// back on the dashboard with a status flag.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	if code == "" || state == "" {
		http.Redirect(w, r, "/dashboard?error=auth_failed", http.StatusSeeOther)
		return
	}

	if err := h.connect.CompleteCallback(r.Context(), state, code); err != nil {
		log.Printf("account linking failed: %v", err)
		http.Redirect(w, r, "/dashboard?error=callback_failed", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?connect=success", http.StatusSeeOther)
}

type paymentPreferenceRequest struct {
	EventID int `json:"event_id"`
	// Field names sent by the original page scripts.
	LegacyEventID    int                     `json:"eventId"`
	WeddingPageID    int                     `json:"weddingPageId"`
	Tier             models.PriceTier        `json:"tier"`
	Items            []services.CheckoutItem `json:"items"`
	IdempotencyToken string                  `json:"idempotency_token"`
}

func (r *paymentPreferenceRequest) eventID() int {
	if r.EventID != 0 {
		return r.EventID
	}
	if r.LegacyEventID != 0 {
		return r.LegacyEventID
	}
	return r.WeddingPageID
}

// CreatePaymentPreference builds a checkout for a guest's cart and returns
// the hosted checkout URL. Guests only ever see a generic error message;
// details stay in the logs.
func (h *PaymentHandler) CreatePaymentPreference(w http.ResponseWriter, r *http.Request) {
	var req paymentPreferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, checkoutErrorMessage)
		return
	}

	eventID := req.eventID()

	resp, err := h.checkout.CreateCheckout(r.Context(), &services.CheckoutRequest{
		EventID:          eventID,
		Tier:             req.Tier,
		Items:            req.Items,
		IdempotencyToken: req.IdempotencyToken,
	})
	if err != nil {
		log.Printf("checkout failed for event %d: %v", eventID, err)
		switch {
		case errors.Is(err, models.ErrEventNotFound),
			errors.Is(err, models.ErrOwnerNotConfigured),
			errors.Is(err, models.ErrEmptyCart):
			respondServiceError(w, err)
		default:
			respondError(w, http.StatusInternalServerError, checkoutErrorMessage)
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetBalance returns the linked account balance for the logged-in owner
func (h *PaymentHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	balance, err := h.connect.Balance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

// Disconnect unlinks the owner's payment account
func (h *PaymentHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.connect.Disconnect(r.Context(), userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}
