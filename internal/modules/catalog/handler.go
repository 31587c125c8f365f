package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Post("/items", h.createItem)                         // POST  /api/v1/catalog/items
		r.Get("/items/{id}", h.getItem)                        // GET   /api/v1/catalog/items/{id}
		r.Patch("/items/{id}", h.updateItem)                   // PATCH /api/v1/catalog/items/{id}
		r.Post("/items/{id}/approve", h.approveReview)         // POST  /api/v1/catalog/items/{id}/approve
		r.Post("/items/{id}/reject", h.rejectReview)           // POST  /api/v1/catalog/items/{id}/reject
		r.Get("/vendors/{vendor_id}/items", h.listVendorItems) // GET /api/v1/catalog/vendors/{id}/items?status=
	})
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) approveReview(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.ApproveReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, reviewErrorCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) rejectReview(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.RejectReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, reviewErrorCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) listVendorItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListVendorItems(r.Context(),
		chi.URLParam(r, "vendor_id"), strings.ToUpper(r.URL.Query().Get("status")))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func reviewErrorCode(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(msg, "not in review") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
