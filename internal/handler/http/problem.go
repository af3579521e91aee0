package http

import (
	"encoding/json"
	"net/http"

	"github.com/ordercore/order-service/internal/apperr"
)

// Problem is an RFC-7807 Problem Details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

var problemByKind = map[apperr.Kind]struct {
	status int
	typ    string
	title  string
}{
	apperr.KindValidation:         {http.StatusBadRequest, "/errors/validation-error", "Bad Request"},
	apperr.KindBusinessValidation: {http.StatusBadRequest, "/errors/business-validation-error", "Business Rule Violation"},
	apperr.KindNotFound:           {http.StatusNotFound, "/errors/resource-not-found", "Resource Not Found"},
	apperr.KindConflict:           {http.StatusConflict, "/errors/conflict", "Conflict"},
	apperr.KindPaymentFailed:      {http.StatusBadRequest, "/errors/payment-failed", "Payment Failed"},
	apperr.KindPaymentUnavailable: {http.StatusBadGateway, "/errors/payment-unavailable", "External Service Unavailable"},
	apperr.KindInternal:           {http.StatusInternalServerError, "/errors/internal-error", "Internal Server Error"},
}

// WriteProblem maps err to its RFC-7807 representation and writes it,
// per the kind -> status+title table above. instance is always
// populated with the request path.
func WriteProblem(w http.ResponseWriter, instance string, err error) {
	kind := apperr.KindOf(err)
	mapping, ok := problemByKind[kind]
	if !ok {
		mapping = problemByKind[apperr.KindInternal]
	}

	detail := err.Error()
	if kind == apperr.KindInternal {
		detail = "an internal error occurred"
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(mapping.status)
	json.NewEncoder(w).Encode(Problem{
		Type:     mapping.typ,
		Title:    mapping.title,
		Status:   mapping.status,
		Detail:   detail,
		Instance: instance,
	})
}
