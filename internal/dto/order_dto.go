package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity"  validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

type CreateOrderRequest struct {
	// ID is the client-generated reference, honored as an idempotency key.
	ID          *string            `json:"id"          validate:"omitempty,max=64"`
	TableNumber int                `json:"tableNumber" validate:"required,min=1"`
	WaiterName  string             `json:"waiterName"  validate:"max=80"`
	Items       []OrderItemRequest `json:"items"       validate:"required,min=1,dive"`
	// Total is accepted for wire compatibility but recomputed server-side.
	Total *decimal.Decimal `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status        string           `json:"status"         validate:"required"`
	PaymentMethod *string          `json:"payment_method"`
	AmountPaid    *decimal.Decimal `json:"amount_paid"`
}

// OrderFilter is bound from the query string of GET /api/orders.
// Default view is the open (unpaid) snapshot the clients poll.
type OrderFilter struct {
	Status string `form:"status"`
	Table  int    `form:"table"  validate:"min=0"`
	All    bool   `form:"all"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Notes     *string         `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	TableNumber   int                 `json:"tableNumber"`
	WaiterName    string              `json:"waiterName"`
	Items         []OrderItemResponse `json:"items"`
	Status        string              `json:"status"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	AmountPaid    *decimal.Decimal    `json:"amount_paid,omitempty"`
	Timestamp     string              `json:"timestamp"`
}
