package dto

import "github.com/shopspring/decimal"

type TableResponse struct {
	Number int    `json:"number"`
	Status string `json:"status"`
}

// BillItem is one consolidated line of a table's bill: the same product
// across several orders collapses into a single row.
type BillItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type BillResponse struct {
	TableNumber int             `json:"tableNumber"`
	OrderCount  int             `json:"orderCount"`
	Items       []BillItem      `json:"items"`
	Total       decimal.Decimal `json:"total"`
}

// ─── Checkout ────────────────────────────────────────────────────────────────

type PayTableRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	// AmountPaid is required (and checked against the total) for DINHEIRO.
	AmountPaid *decimal.Decimal `json:"amount_paid"`
}

type PayTableResponse struct {
	TableNumber   int             `json:"tableNumber"`
	OrdersPaid    int             `json:"ordersPaid"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Change        decimal.Decimal `json:"change"`
}
