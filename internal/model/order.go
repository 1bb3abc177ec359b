package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one kitchen ticket tied to a table. Total is computed once at
// creation from the denormalized line items and never recomputed — there are
// no voids or edits. A table accumulates several orders before payment.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// ClientRef is the id the client generated before submitting. It dedupes
	// retried POSTs: the same ref always resolves to the same order.
	ClientRef   *string `gorm:"uniqueIndex"`
	TableNumber int     `gorm:"not null;index"`
	WaiterName  string      `gorm:"type:varchar(80)"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'PENDENTE';index"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Settlement fields, written exactly once on the transition to PAGO.
	PaymentMethod *PaymentMethod   `gorm:"type:varchar(20)"`
	AmountPaid    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem is a line inside an order. Name, price and category are copied
// from the product at order time so later catalog changes never rewrite an
// already-sent ticket.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Category  string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	Notes     *string
}
