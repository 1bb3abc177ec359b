package repository

import (
	"context"

	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository is the read side of the menu catalog. Services depend on
// this interface, not on the concrete GORM implementation, enabling clean
// unit testing via in-memory stubs.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("active = true").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN ? AND active = true", ids).
		Find(&products).Error
	return products, err
}
