package repository

import (
	"context"

	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	List(ctx context.Context) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	// AdjustQuantity applies an additive delta in one statement.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	ListBelowMin(ctx context.Context) ([]model.InventoryItem, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) List(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *inventoryRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *inventoryRepo) ListBelowMin(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= min_stock").
		Order("name ASC").
		Find(&items).Error
	return items, err
}
