package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gift-registry-platform/internal/models"
	"gift-registry-platform/internal/services"
)

// PublicHandler serves guest-facing pages and their data API
type PublicHandler struct {
	registry *services.RegistryService
}

func NewPublicHandler(registry *services.RegistryService) *PublicHandler {
	return &PublicHandler{registry: registry}
}

var eventPageTemplate = template.Must(template.New("event").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>{{.Title}}</title>
	<link rel="stylesheet" href="/static/css/evento.css">
</head>
<body data-theme="{{.Theme}}">
	<div id="app" data-page-path="{{.PagePath}}"></div>
	<script src="/static/js/evento.js"></script>
</body>
</html>`))

type eventPageView struct {
	Title    string
	Theme    models.LayoutTheme
	PagePath string
}

// EventPage serves the guest page shell for slug and legacy id routes. The
// page script loads its data from the page-data API using the same path.
func (h *PublicHandler) EventPage(w http.ResponseWriter, r *http.Request) {
	ident := models.ResolvePageIdentifier(r.URL.Path)

	// The catch-all must not swallow asset-like paths or reserved routes.
	if ident.Kind == models.IdentifierSlug {
		if strings.Contains(ident.Slug, ".") || models.IsReservedSlug(ident.Slug) {
			http.NotFound(w, r)
			return
		}
	}

	page, err := h.registry.ResolvePage(r.Context(), ident, r.URL.Query())
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	eventPageTemplate.Execute(w, eventPageView{
		Title:    page.Event.MainTitle,
		Theme:    page.Event.LayoutTheme,
		PagePath: r.URL.Path,
	})
}

// PageData returns the resolved page as JSON for the page script. The path
// query parameter carries the public path the page was loaded from, so
// premium-slug access keeps its premium pricing here too.
func (h *PublicHandler) PageData(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	page, err := h.registry.ResolvePage(r.Context(), models.ResolvePageIdentifier(path), r.URL.Query())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// SubmitRSVP records a guest confirmation
func (h *PublicHandler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.RSVPCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rsvp, err := h.registry.SubmitRSVP(r.Context(), eventID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rsvp)
}

// Home serves the landing page
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.EventPage(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Lista de Presentes</title></head>
<body>
	<h1>Lista de Presentes</h1>
	<p>Crie a lista de presentes do seu casamento.</p>
	<a href="/login">Entrar</a>
</body>
</html>`))
}

// LoginPage serves the owner login shell
func (h *PublicHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Entrar</title></head>
<body>
	<div id="app"></div>
	<script src="/static/js/login.js"></script>
</body>
</html>`))
}

// DashboardPage serves the owner editor shell
func (h *PublicHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="utf-8"><title>Painel</title></head>
<body>
	<div id="app"></div>
	<script src="/static/js/dashboard.js"></script>
</body>
</html>`))
}
