package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups menu products (espetinhos, bebidas, porções, …).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

// Product is one sellable menu entry. The catalog is seeded, not managed by
// end users; only the stock counter moves.
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"index;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Stock      int             `gorm:"not null;default:0"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
