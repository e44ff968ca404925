package handlers

import (
	"net/http"

	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

// maxUploadSize bounds owner photo uploads
const maxUploadSize = 10 << 20 // 10 MB

// DashboardHandler serves the owner editor API: page save, RSVPs and
// photo uploads.
type DashboardHandler struct {
	registry *services.RegistryService
	images   *services.ImageService
}

func NewDashboardHandler(registry *services.RegistryService, images *services.ImageService) *DashboardHandler {
	return &DashboardHandler{registry: registry, images: images}
}

// GetPage returns the owner's editor state including the gift list. A
// brand-new owner without a saved page gets an empty editor state.
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	event, err := h.registry.OwnerPage(r.Context(), userID)
	if err == models.ErrEventNotFound {
		respondJSON(w, http.StatusOK, map[string]interface{}{"event": nil})
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"event": event})
}

// SavePage persists the full editor state atomically
func (h *DashboardHandler) SavePage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req models.EventSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.registry.Save(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"event": event})
}

// ListRSVPs returns the owner's guest confirmations, attending first
func (h *DashboardHandler) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	rsvps, err := h.registry.ListRSVPs(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rsvps == nil {
		rsvps = []*models.RSVP{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rsvps": rsvps})
}

// UploadImage stores an owner photo and returns its public URL
func (h *DashboardHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "file too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	result, err := h.images.UploadImage(r.Context(), file, header.Filename)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not process the image")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
