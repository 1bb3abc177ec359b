package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem tracks a raw material (carvão, carne, pão de alho…).
// Quantities are decimal because units include kg and litres. Restocking is
// a manual additive adjustment; sales never decrement these rows.
type InventoryItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"uniqueIndex;not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit     string          `gorm:"type:varchar(20);not null;default:'un'"`
	// MinStock drives the low-stock indicator only; it blocks nothing.
	MinStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InventoryItem) TableName() string { return "inventory" }
