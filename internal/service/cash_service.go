package service

import (
	"context"
	"errors"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/notify"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"
	"github.com/claudioasousa/Espetaria-PRO/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionAlreadyOpen = errors.New("já existe uma sessão de caixa aberta")
	ErrNoOpenSession      = errors.New("nenhuma sessão de caixa aberta")
	ErrSessionNotOpen     = errors.New("sessão de caixa não está aberta")
	ErrSessionNotFound    = errors.New("sessão de caixa não encontrada")
)

type CashService interface {
	Open(ctx context.Context, req dto.OpenCashRequest) (*dto.CashSessionResponse, error)
	Close(ctx context.Context, id uuid.UUID) (*dto.CashSessionResponse, error)
	AddTransaction(ctx context.Context, req dto.CashTransactionRequest) (*dto.CashTransactionResponse, error)
	Active(ctx context.Context) (*dto.ActiveSessionResponse, error)
	History(ctx context.Context, page, limit int) (*dto.CashSessionListResponse, error)
}

type cashService struct {
	repo       repository.CashRepository
	orderRepo  repository.OrderRepository
	dispatcher *worker.Dispatcher
	notifier   *notify.Notifier
}

func NewCashService(
	repo repository.CashRepository,
	orderRepo repository.OrderRepository,
	dispatcher *worker.Dispatcher,
	notifier *notify.Notifier,
) CashService {
	return &cashService{
		repo:       repo,
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

func (s *cashService) Open(ctx context.Context, req dto.OpenCashRequest) (*dto.CashSessionResponse, error) {
	existing, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := model.CashSession{
		OpeningBalance: req.OpeningBalance,
		Status:         model.SessionOpen,
		StartTime:      time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notify.TopicCash)
	return sessionToResponse(&session), nil
}

// Close stamps the end time and stores the expected balance as the closing
// balance. The expected figure is informational: nothing forces the drawer
// count to match it.
func (s *cashService) Close(ctx context.Context, id uuid.UUID) (*dto.CashSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != model.SessionOpen {
		return nil, ErrSessionNotOpen
	}

	summary, err := s.summarize(ctx, session)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session.Status = model.SessionClosed
	session.EndTime = &now
	session.ClosingBalance = &summary.ExpectedBalance
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	s.enqueueReport(ctx, session, summary)
	s.notifier.Publish(ctx, notify.TopicCash)
	return sessionToResponse(session), nil
}

func (s *cashService) AddTransaction(ctx context.Context, req dto.CashTransactionRequest) (*dto.CashTransactionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("session_id inválido")
	}
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != model.SessionOpen {
		return nil, ErrSessionNotOpen
	}

	transaction := model.CashTransaction{
		SessionID:   sessionID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := s.repo.CreateTransaction(ctx, &transaction); err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notify.TopicCash)
	return transactionToResponse(&transaction), nil
}

// Active returns the open session with its transactions and the live
// reconciliation summary, or ErrNoOpenSession.
func (s *cashService) Active(ctx context.Context) (*dto.ActiveSessionResponse, error) {
	session, err := s.repo.FindOpenSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoOpenSession
	}

	transactions, err := s.repo.ListTransactions(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, session)
	if err != nil {
		return nil, err
	}

	txResponses := make([]dto.CashTransactionResponse, 0, len(transactions))
	for i := range transactions {
		txResponses = append(txResponses, *transactionToResponse(&transactions[i]))
	}
	return &dto.ActiveSessionResponse{
		Session:      *sessionToResponse(session),
		Transactions: txResponses,
		Summary:      *summary,
	}, nil
}

func (s *cashService) History(ctx context.Context, page, limit int) (*dto.CashSessionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	sessions, total, err := s.repo.ListClosedSessions(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CashSessionResponse, 0, len(sessions))
	for i := range sessions {
		data = append(data, *sessionToResponse(&sessions[i]))
	}
	return &dto.CashSessionListResponse{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// summarize computes the reconciliation view: expected balance is opening
// balance + paid sales since the session started + cash-ins − cash-outs.
func (s *cashService) summarize(ctx context.Context, session *model.CashSession) (*dto.CashSummary, error) {
	sales, err := s.orderRepo.SumPaidTotalsSince(ctx, session.StartTime)
	if err != nil {
		return nil, err
	}
	transactions, err := s.repo.ListTransactions(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	cashIn, cashOut := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case model.CashIn:
			cashIn = cashIn.Add(t.Amount)
		case model.CashOut:
			cashOut = cashOut.Add(t.Amount)
		}
	}

	return &dto.CashSummary{
		Sales:           sales,
		CashIn:          cashIn,
		CashOut:         cashOut,
		ExpectedBalance: session.OpeningBalance.Add(sales).Add(cashIn).Sub(cashOut),
	}, nil
}

// enqueueReport is best-effort: the session is already closed either way.
func (s *cashService) enqueueReport(ctx context.Context, session *model.CashSession, summary *dto.CashSummary) {
	if s.dispatcher == nil || session.EndTime == nil {
		return
	}
	payload := worker.ReportJobPayload{
		SessionID:      session.ID.String(),
		StartTime:      session.StartTime,
		EndTime:        *session.EndTime,
		OpeningBalance: session.OpeningBalance,
		ClosingBalance: summary.ExpectedBalance,
		Sales:          summary.Sales,
		CashIn:         summary.CashIn,
		CashOut:        summary.CashOut,
	}
	if err := s.dispatcher.EnqueueReport(ctx, payload); err != nil {
		log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("failed to enqueue report job")
	}
}

func sessionToResponse(s *model.CashSession) *dto.CashSessionResponse {
	resp := &dto.CashSessionResponse{
		ID:             s.ID.String(),
		StartTime:      s.StartTime.Format(time.RFC3339),
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Status:         s.Status,
	}
	if s.EndTime != nil {
		end := s.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}

func transactionToResponse(t *model.CashTransaction) *dto.CashTransactionResponse {
	return &dto.CashTransactionResponse{
		ID:          t.ID.String(),
		SessionID:   t.SessionID.String(),
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Timestamp:   t.CreatedAt.Format(time.RFC3339),
	}
}
