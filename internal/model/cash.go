package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSession is one register-open-to-close period. At most one session is
// OPEN system-wide, enforced by a pre-check inside the opening transaction.
type CashSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ClosingBalance is the expected cash balance snapshotted at close time.
	// It is informational — nothing reconciles against it.
	ClosingBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status         string           `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	StartTime      time.Time
	EndTime        *time.Time

	Transactions []CashTransaction `gorm:"foreignKey:SessionID"`
}

// CashTransaction is an immutable manual movement (APORTE or SANGRIA) inside
// a session. Entries are never edited or deleted.
type CashTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null"`
	CreatedAt   time.Time
}
