package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ordercore/order-service/internal/apperr"
	"github.com/ordercore/order-service/internal/service"
)

const maxIdempotencyKeyLen = 100

// OrderHandler exposes the core's HTTP surface, translating JSON
// requests into service calls and service errors into RFC-7807
// Problem Details responses.
type OrderHandler struct {
	orders    service.OrderService
	payments  service.PaymentService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewOrderHandler wires an OrderHandler.
func NewOrderHandler(orders service.OrderService, payments service.PaymentService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:    orders,
		payments:  payments,
		validator: validator.New(),
		logger:    logger.With().Str("component", "order_handler").Logger(),
	}
}

// Routes registers the core's HTTP surface on r.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Post("/api/orders", h.CreateOrder)
	r.Get("/api/orders/{id}", h.GetOrder)
	r.Get("/api/orders/customer/{email}", h.ListCustomerOrders)
	r.Post("/api/orders/{id}/authorize-payment", h.AuthorizePayment)
	r.Post("/api/orders/{id}/cancel", h.CancelOrder)
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		WriteProblem(w, r.URL.Path, apperr.Validation("Idempotency-Key header is required"))
		return
	}
	if len(idempotencyKey) > maxIdempotencyKeyLen || !isPrintableASCII(idempotencyKey) {
		WriteProblem(w, r.URL.Path, apperr.Validation("Idempotency-Key must be at most %d printable characters", maxIdempotencyKeyLen))
		return
	}

	var body createOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("malformed request body"))
		return
	}
	if err := h.validator.Struct(&body); err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("%s", err.Error()))
		return
	}

	result, err := h.orders.CreateOrder(r.Context(), body.toModel(), idempotencyKey)
	if err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	writeJSON(w, status, newOrderResponse(result.Order))
}

// GetOrder handles GET /api/orders/{id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("invalid order id"))
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(order))
}

// ListCustomerOrders handles GET /api/orders/customer/{email}.
func (h *OrderHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	page, err := parseIntParam(r, "page", 0)
	if err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("invalid page parameter"))
		return
	}
	size, err := parseIntParam(r, "size", 10)
	if err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("invalid size parameter"))
		return
	}

	result, err := h.orders.ListCustomerOrders(r.Context(), email, page, size)
	if err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}

	content := make([]orderResponse, 0, len(result.Content))
	for _, o := range result.Content {
		content = append(content, newOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, pagedOrdersResponse{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		First:         result.Page == 0,
		Last:          result.Page >= result.TotalPages-1,
	})
}

// AuthorizePayment handles POST /api/orders/{id}/authorize-payment.
func (h *OrderHandler) AuthorizePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("invalid order id"))
		return
	}

	if err := h.payments.AuthorizePayment(r.Context(), id); err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(order))
}

// CancelOrder handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteProblem(w, r.URL.Path, apperr.Validation("invalid order id"))
		return
	}

	if err := h.orders.CancelOrder(r.Context(), id); err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		WriteProblem(w, r.URL.Path, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(order))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return false
		}
	}
	return true
}
