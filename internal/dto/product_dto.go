package dto

import "github.com/shopspring/decimal"

// ProductResponse flattens the category join for the menu snapshot.
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}
