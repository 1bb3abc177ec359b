package worker

// report_worker.go
// Processes cash-close report jobs from QueueReport: mails the session
// summary to the configured management address. SMTP goes through the
// circuit breaker so a dead mail server fast-fails instead of hanging
// every worker on a timeout.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportJobPayload is the job envelope sent to QueueReport.
type ReportJobPayload struct {
	SessionID      string          `json:"session_id"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        time.Time       `json:"end_time"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Sales          decimal.Decimal `json:"sales"`
	CashIn         decimal.Decimal `json:"cash_in"`
	CashOut        decimal.Decimal `json:"cash_out"`
}

type ReportWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	to     string
}

func NewReportWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, to string) *ReportWorker {
	return &ReportWorker{mailer: mailer, cb: cb, to: to}
}

func (w *ReportWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return nil // malformed payload will never succeed — drop it
	}
	if w.to == "" {
		log.Warn().Msg("report_worker: no report recipient configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Fechamento de caixa — %s", payload.EndTime.Format("02/01/2006 15:04"))
	body := buildReportBody(&payload)

	err := w.cb.Execute(func() error {
		return w.mailer.SendReport(w.to, subject, body)
	})
	if err != nil {
		log.Error().Err(err).Str("session_id", payload.SessionID).Msg("report_worker: failed to send report")
		return err
	}
	log.Info().Str("session_id", payload.SessionID).Str("to", w.to).Msg("report_worker: report sent")
	return nil
}

func buildReportBody(p *ReportJobPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sessão de caixa %s\n", p.SessionID)
	fmt.Fprintf(&b, "Abertura:   %s\n", p.StartTime.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Fechamento: %s\n\n", p.EndTime.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Saldo inicial:  R$ %s\n", p.OpeningBalance.StringFixed(2))
	fmt.Fprintf(&b, "Vendas pagas:   R$ %s\n", p.Sales.StringFixed(2))
	fmt.Fprintf(&b, "Aportes:        R$ %s\n", p.CashIn.StringFixed(2))
	fmt.Fprintf(&b, "Sangrias:       R$ %s\n", p.CashOut.StringFixed(2))
	fmt.Fprintf(&b, "Saldo esperado: R$ %s\n", p.ClosingBalance.StringFixed(2))
	return b.String()
}
