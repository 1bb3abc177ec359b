package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenCashRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
}

type CashTransactionRequest struct {
	SessionID   string          `json:"session_id"  validate:"required,uuid"`
	Type        string          `json:"type"        validate:"required,oneof=APORTE SANGRIA"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashSessionResponse struct {
	ID             string           `json:"id"`
	StartTime      string           `json:"start_time"`
	EndTime        *string          `json:"end_time"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	ClosingBalance *decimal.Decimal `json:"closing_balance"`
	Status         string           `json:"status"`
}

type CashTransactionResponse struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   string          `json:"timestamp"`
}

// CashSummary is the read-only reconciliation view: expected balance is
// opening + paid sales since the session started + cash-ins − cash-outs.
// It is displayed, never enforced.
type CashSummary struct {
	Sales           decimal.Decimal `json:"sales"`
	CashIn          decimal.Decimal `json:"cash_in"`
	CashOut         decimal.Decimal `json:"cash_out"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
}

type ActiveSessionResponse struct {
	Session      CashSessionResponse       `json:"session"`
	Transactions []CashTransactionResponse `json:"transactions"`
	Summary      CashSummary               `json:"summary"`
}

type CashSessionListResponse struct {
	Data  []CashSessionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
