package restaurant

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes restaurant profile HTTP endpoints, including the
// billing-profile lookup consumed when rendering invoices.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	// Billing-profile lookup used by invoice rendering clients.
	r.Get("/api/restaurant-info/{restaurant_id}", h.getRestaurantInfo)

	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Post("/", h.createRestaurant) // POST /api/v1/restaurants
		r.Get("/", h.listRestaurants)   // GET  /api/v1/restaurants
		r.Get("/{id}", h.getRestaurant) // GET  /api/v1/restaurants/{id}
	})
}

func (h *Handler) getRestaurantInfo(w http.ResponseWriter, r *http.Request) {
	rest, err := h.service.GetRestaurant(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rest)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rest, err := h.service.CreateRestaurant(r.Context(), req)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.service.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rest)
}

func (h *Handler) listRestaurants(w http.ResponseWriter, r *http.Request) {
	rests, err := h.service.ListRestaurants(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rests)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
