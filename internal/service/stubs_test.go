package service_test

// In-memory repository stubs shared by the service tests. All *Tx methods
// accept a nil *gorm.DB because runTx short-circuits when no database is
// wired (unit test mode).

import (
	"context"
	"errors"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func seedProduct(repo *stubProductRepo, name, price, category string) *model.Product {
	p := &model.Product{
		ID:     uuid.New(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Active: true,
		Category: &model.Category{
			ID:     uuid.New(),
			Name:   category,
			Active: true,
		},
	}
	repo.products[p.ID] = p
	return p
}

// ── Tables ────────────────────────────────────────────────────────────────────

type stubTableRepo struct {
	tables map[int]*model.Table
}

func newStubTableRepo(numbers ...int) *stubTableRepo {
	r := &stubTableRepo{tables: make(map[int]*model.Table)}
	for _, n := range numbers {
		r.tables[n] = &model.Table{Number: n, Status: model.TableAvailable}
	}
	return r
}

func (r *stubTableRepo) List(_ context.Context) ([]model.Table, error) {
	out := make([]model.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTableRepo) FindByNumber(_ context.Context, number int) (*model.Table, error) {
	t, ok := r.tables[number]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubTableRepo) UpdateStatusTx(_ *gorm.DB, number int, status model.TableStatus) error {
	t, ok := r.tables[number]
	if !ok {
		return errors.New("not found")
	}
	t.Status = status
	return nil
}

var _ repository.TableRepository = (*stubTableRepo)(nil)

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders    []*model.Order
	byID      map[uuid.UUID]*model.Order
	byRef     map[string]*model.Order
	paidSales decimal.Decimal
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		byID:      make(map[uuid.UUID]*model.Order),
		byRef:     make(map[string]*model.Order),
		paidSales: decimal.Zero,
	}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	r.orders = append(r.orders, o)
	r.byID[o.ID] = o
	if o.ClientRef != nil {
		r.byRef[*o.ClientRef] = o
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrderRepo) FindByClientRef(_ context.Context, ref string) (*model.Order, error) {
	o, ok := r.byRef[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		switch {
		case filter.Status != "":
			if string(o.Status) != filter.Status {
				continue
			}
		case !filter.All:
			if o.Status == model.OrderPaid {
				continue
			}
		}
		if filter.Table > 0 && o.TableNumber != filter.Table {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) openByTable(table int) []*model.Order {
	var out []*model.Order
	for _, o := range r.orders {
		if o.TableNumber == table && o.Status.IsOpen() {
			out = append(out, o)
		}
	}
	return out
}

func (r *stubOrderRepo) ListOpenByTable(_ context.Context, table int) ([]model.Order, error) {
	open := r.openByTable(table)
	out := make([]model.Order, 0, len(open))
	for _, o := range open {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) ListOpenByTableTx(_ *gorm.DB, table int) ([]model.Order, error) {
	return r.ListOpenByTable(context.Background(), table)
}

func (r *stubOrderRepo) CountOpenByTableTx(_ *gorm.DB, table int) (int64, error) {
	return int64(len(r.openByTable(table))), nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.Order) error {
	stored, ok := r.byID[o.ID]
	if !ok {
		return errors.New("not found")
	}
	*stored = *o
	return nil
}

func (r *stubOrderRepo) SumPaidTotalsSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return r.paidSales, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Inventory ─────────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryItem, error) {
	out := make([]model.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

func (r *stubInventoryRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	item.Quantity = item.Quantity.Add(delta)
	return nil
}

func (r *stubInventoryRepo) ListBelowMin(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, item := range r.items {
		if item.Quantity.LessThanOrEqual(item.MinStock) {
			out = append(out, *item)
		}
	}
	return out, nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Cash ──────────────────────────────────────────────────────────────────────

type stubCashRepo struct {
	sessions     map[uuid.UUID]*model.CashSession
	transactions []model.CashTransaction
}

func newStubCashRepo() *stubCashRepo {
	return &stubCashRepo{sessions: make(map[uuid.UUID]*model.CashSession)}
}

func (r *stubCashRepo) CreateSession(_ context.Context, s *model.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCashRepo) FindOpenSession(_ context.Context) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, nil
}

func (r *stubCashRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubCashRepo) UpdateSession(_ context.Context, s *model.CashSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubCashRepo) CreateTransaction(_ context.Context, t *model.CashTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	r.transactions = append(r.transactions, *t)
	return nil
}

func (r *stubCashRepo) ListTransactions(_ context.Context, sessionID uuid.UUID) ([]model.CashTransaction, error) {
	var out []model.CashTransaction
	for _, t := range r.transactions {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubCashRepo) ListClosedSessions(_ context.Context, page, limit int) ([]model.CashSession, int64, error) {
	var out []model.CashSession
	for _, s := range r.sessions {
		if s.Status == model.SessionClosed {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.CashRepository = (*stubCashRepo)(nil)
