package notification

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes notification HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/notifications", func(r chi.Router) {
		r.Get("/", h.list)               // GET  /api/v1/notifications?audience=&vendor_id=
		r.Post("/{id}/read", h.markRead) // POST /api/v1/notifications/{id}/read
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	audience := Audience(strings.ToUpper(r.URL.Query().Get("audience")))
	if audience != AudienceAdmin && audience != AudienceVendor {
		respond(w, http.StatusBadRequest, map[string]string{"error": "audience must be ADMIN or VENDOR"})
		return
	}
	notifications, err := h.service.List(r.Context(), audience, r.URL.Query().Get("vendor_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, notifications)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
