package repository

import (
	"context"
	"errors"

	"github.com/claudioasousa/Espetaria-PRO/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashRepository interface {
	CreateSession(ctx context.Context, s *model.CashSession) error
	// FindOpenSession returns (nil, nil) when no session is open.
	FindOpenSession(ctx context.Context) (*model.CashSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	UpdateSession(ctx context.Context, s *model.CashSession) error
	CreateTransaction(ctx context.Context, t *model.CashTransaction) error
	ListTransactions(ctx context.Context, sessionID uuid.UUID) ([]model.CashTransaction, error)
	ListClosedSessions(ctx context.Context, page, limit int) ([]model.CashSession, int64, error)
}

type cashRepo struct{ db *gorm.DB }

func NewCashRepository(db *gorm.DB) CashRepository { return &cashRepo{db: db} }

func (r *cashRepo) CreateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashRepo) FindOpenSession(ctx context.Context) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Where("status = ?", model.SessionOpen).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *cashRepo) UpdateSession(ctx context.Context, s *model.CashSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cashRepo) CreateTransaction(ctx context.Context, t *model.CashTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *cashRepo) ListTransactions(ctx context.Context, sessionID uuid.UUID) ([]model.CashTransaction, error) {
	var txs []model.CashTransaction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *cashRepo) ListClosedSessions(ctx context.Context, page, limit int) ([]model.CashSession, int64, error) {
	var sessions []model.CashSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashSession{}).Where("status = ?", model.SessionClosed)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("start_time DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&sessions).Error
	return sessions, total, err
}
