package model

import "time"

// Table is a physical seating unit. The set is fixed at seed time (1..N);
// only the status changes, and OCCUPIED holds exactly while the table has
// at least one unpaid order.
type Table struct {
	Number    int         `gorm:"primaryKey;autoIncrement:false"`
	Status    TableStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	UpdatedAt time.Time
}
