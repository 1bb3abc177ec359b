package infra

import (
	"fmt"

	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// schema. The schema is owned entirely by AutoMigrate; there is no legacy
// database to reconcile with.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by the seeder and
// the integration tests, which run against a fresh container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryItem{},
		&model.CashSession{},
		&model.CashTransaction{},
	)
}
