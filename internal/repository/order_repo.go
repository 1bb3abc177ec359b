package repository

import (
	"context"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// CreateTx inserts the order and its items inside the caller's transaction.
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByClientRef(ctx context.Context, ref string) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error)
	ListOpenByTable(ctx context.Context, table int) ([]model.Order, error)
	// ListOpenByTableTx locks the table's unpaid orders for the settlement
	// transaction; concurrent checkouts serialize on these rows.
	ListOpenByTableTx(tx *gorm.DB, table int) ([]model.Order, error)
	CountOpenByTableTx(tx *gorm.DB, table int) (int64, error)
	UpdateTx(tx *gorm.DB, o *model.Order) error
	// SumPaidTotalsSince feeds the cash session's expected-balance summary.
	SumPaidTotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByClientRef(ctx context.Context, ref string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "client_ref = ?", ref).Error
	return &o, err
}

// List returns the unpaid snapshot by default, oldest first so the kitchen
// queue renders FIFO. filter.All widens to every order, filter.Status narrows
// to one state, filter.Table to one table.
func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items")

	switch {
	case filter.Status != "":
		q = q.Where("status = ?", filter.Status)
	case !filter.All:
		q = q.Where("status != ?", model.OrderPaid)
	}
	if filter.Table > 0 {
		q = q.Where("table_number = ?", filter.Table)
	}

	var orders []model.Order
	err := q.Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListOpenByTable(ctx context.Context, table int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("table_number = ? AND status != ?", table, model.OrderPaid).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListOpenByTableTx(tx *gorm.DB, table int) ([]model.Order, error) {
	var orders []model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("table_number = ? AND status != ?", table, model.OrderPaid).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountOpenByTableTx(tx *gorm.DB, table int) (int64, error) {
	var count int64
	err := tx.Model(&model.Order{}).
		Where("table_number = ? AND status != ?", table, model.OrderPaid).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Omit("Items").Save(o).Error
}

func (r *orderRepo) SumPaidTotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total)").
		Where("status = ? AND created_at >= ?", model.OrderPaid, since).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
