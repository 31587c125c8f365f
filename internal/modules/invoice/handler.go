package invoice

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes invoice HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/invoices", func(r chi.Router) {
		r.Post("/orders/{order_id}/generate", h.generate)               // POST /api/v1/invoices/orders/{id}/generate
		r.Post("/scan", h.scan)                                         // POST /api/v1/invoices/scan
		r.Get("/orders/{order_id}", h.getForOrder)                      // GET  /api/v1/invoices/orders/{id}
		r.Get("/vendors/{vendor_id}", h.listVendorInvoices)             // GET  /api/v1/invoices/vendors/{id}
		r.Get("/restaurants/{restaurant_id}", h.listRestaurantInvoices) // GET  /api/v1/invoices/restaurants/{id}
		r.Post("/orders/{order_id}/vendor/pay", h.payVendor)            // POST /api/v1/invoices/orders/{id}/vendor/pay
		r.Post("/orders/{order_id}/restaurant/pay", h.payRestaurant)    // POST /api/v1/invoices/orders/{id}/restaurant/pay
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GenerateForOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "not fulfilled") {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	status := http.StatusOK
	if result.VendorCreated || result.RestaurantCreated {
		status = http.StatusCreated
	}
	respond(w, status, result)
}

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ScanAndGenerate(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, report)
}

func (h *Handler) getForOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetInvoicesForOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) listVendorInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListVendorInvoices(r.Context(), chi.URLParam(r, "vendor_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, invoices)
}

func (h *Handler) listRestaurantInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListRestaurantInvoices(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, invoices)
}

func (h *Handler) payVendor(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.MarkVendorInvoicePaid(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, payErrorCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) payRestaurant(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.MarkRestaurantInvoicePaid(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, payErrorCode(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, inv)
}

func payErrorCode(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(msg, "already paid") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
