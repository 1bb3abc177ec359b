package dto

import "github.com/shopspring/decimal"

type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required,gt=0"`
}

type InventoryItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	MinStock decimal.Decimal `json:"minStock"`
}
