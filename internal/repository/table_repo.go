package repository

import (
	"context"

	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"gorm.io/gorm"
)

type TableRepository interface {
	List(ctx context.Context) ([]model.Table, error)
	FindByNumber(ctx context.Context, number int) (*model.Table, error)
	// UpdateStatusTx flips a table inside an order/settlement transaction so
	// occupancy can never drift from the order rows it is derived from.
	UpdateStatusTx(tx *gorm.DB, number int, status model.TableStatus) error
}

type tableRepo struct{ db *gorm.DB }

func NewTableRepository(db *gorm.DB) TableRepository { return &tableRepo{db: db} }

func (r *tableRepo) List(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepo) FindByNumber(ctx context.Context, number int) (*model.Table, error) {
	var t model.Table
	err := r.db.WithContext(ctx).First(&t, "number = ?", number).Error
	return &t, err
}

func (r *tableRepo) UpdateStatusTx(tx *gorm.DB, number int, status model.TableStatus) error {
	return tx.Model(&model.Table{}).Where("number = ?", number).
		Update("status", status).Error
}
