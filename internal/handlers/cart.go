package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

const cartSessionKey = "cart"

// CartHandler manages the guest's session cart. The cart only stores which
// gifts were picked; checkout re-resolves every price server-side.
type CartHandler struct {
	registry *services.RegistryService
	store    sessions.Store
}

func NewCartHandler(registry *services.RegistryService, store sessions.Store) *CartHandler {
	return &CartHandler{registry: registry, store: store}
}

func (h *CartHandler) loadCart(r *http.Request) (*sessions.Session, *models.Cart) {
	session, _ := h.store.Get(r, middleware.SessionName)
	if cart, ok := session.Values[cartSessionKey].(*models.Cart); ok && cart != nil {
		return session, cart
	}
	return session, nil
}

func (h *CartHandler) saveCart(w http.ResponseWriter, r *http.Request, session *sessions.Session, cart *models.Cart) {
	session.Values[cartSessionKey] = cart
	if err := session.Save(r, w); err != nil {
		log.Printf("failed to save cart session: %v", err)
	}
}

// GetCart returns the current session cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	_, cart := h.loadCart(r)
	if cart == nil {
		cart = &models.Cart{Items: []models.CartLineItem{}}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cart":  cart,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

type cartAddRequest struct {
	EventID int              `json:"event_id"`
	GiftID  int              `json:"gift_id"`
	Tier    models.PriceTier `json:"tier"`
}

// AddItem adds a gift to the session cart as a new line. Adding the same
// gift twice yields two lines with distinct cart item ids.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Tier != models.TierPremium {
		req.Tier = models.TierDefault
	}

	gift, err := h.registry.ResolveGift(r.Context(), req.EventID, req.GiftID, req.Tier)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, cart := h.loadCart(r)
	// Switching pages or tiers starts a fresh cart.
	if cart == nil || cart.EventID != req.EventID || cart.Tier != req.Tier {
		cart = models.NewCart(req.EventID, req.Tier)
	}

	item := cart.Add(gift)
	h.saveCart(w, r, session, cart)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"item":  item,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

type cartRemoveRequest struct {
	CartItemID string `json:"cart_item_id"`
}

// RemoveItem removes a single cart line by its cart item id
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartRemoveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, cart := h.loadCart(r)
	if cart == nil {
		respondError(w, http.StatusNotFound, "cart is empty")
		return
	}

	if !cart.Remove(req.CartItemID) {
		respondError(w, http.StatusNotFound, "cart item not found")
		return
	}
	h.saveCart(w, r, session, cart)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

// ClearCart empties the session cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, cart := h.loadCart(r)
	if cart != nil {
		delete(session.Values, cartSessionKey)
		if err := session.Save(r, w); err != nil {
			log.Printf("failed to clear cart session: %v", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"count": 0})
}
