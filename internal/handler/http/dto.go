package http

import (
	"time"

	"github.com/ordercore/order-service/internal/models"
)

// orderItemResponse is one line item in an order response body.
type orderItemResponse struct {
	ProductSKU  string `json:"product_sku"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// paymentResponse is the payment snapshot attached to an order, if any.
type paymentResponse struct {
	Status                  string  `json:"status"`
	Amount                  string  `json:"amount"`
	ExternalAuthorizationID *string `json:"external_authorization_id,omitempty"`
	FailureReason           *string `json:"failure_reason,omitempty"`
}

// orderResponse is the JSON envelope returned for a single order.
type orderResponse struct {
	ID             string              `json:"id"`
	CustomerEmail  string              `json:"customer_email"`
	Status         string              `json:"status"`
	Subtotal       string              `json:"subtotal"`
	DiscountAmount string              `json:"discount_amount"`
	Total          string              `json:"total"`
	Items          []orderItemResponse `json:"items"`
	Payment        *paymentResponse    `json:"payment,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func newOrderResponse(o *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
		})
	}

	resp := orderResponse{
		ID:             o.ID.String(),
		CustomerEmail:  o.CustomerEmail,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal.StringFixed(2),
		DiscountAmount: o.DiscountAmount.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Payment != nil {
		resp.Payment = &paymentResponse{
			Status:                  string(o.Payment.Status),
			Amount:                  o.Payment.Amount.StringFixed(2),
			ExternalAuthorizationID: o.Payment.ExternalAuthorizationID,
			FailureReason:           o.Payment.FailureReason,
		}
	}
	return resp
}

// pagedOrdersResponse is the JSON envelope returned for a page of orders.
type pagedOrdersResponse struct {
	Content       []orderResponse `json:"content"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int             `json:"total_elements"`
	TotalPages    int             `json:"total_pages"`
	First         bool            `json:"first"`
	Last          bool            `json:"last"`
}

// createOrderLineItem is one requested SKU/quantity pair in the request
// body of POST /api/orders.
type createOrderLineItem struct {
	ProductSKU string `json:"product_sku" validate:"required,max=50"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// createOrderBody is the request body of POST /api/orders.
type createOrderBody struct {
	CustomerEmail string                `json:"customer_email" validate:"required,email"`
	Items         []createOrderLineItem `json:"items" validate:"required,min=1,dive"`
}

func (b *createOrderBody) toModel() *models.CreateOrderRequest {
	items := make([]models.LineItemRequest, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, models.LineItemRequest{
			ProductSKU: it.ProductSKU,
			Quantity:   it.Quantity,
		})
	}
	return &models.CreateOrderRequest{
		CustomerEmail: b.CustomerEmail,
		Items:         items,
	}
}
