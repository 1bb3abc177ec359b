package worker

// receipt_worker.go
// Processes table-receipt jobs from QueueReceipt: renders the consolidated
// bill of a just-settled table to a PDF on local disk.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt. It carries the
// fully resolved bill so the worker never re-reads settled orders.
type ReceiptJobPayload struct {
	TableNumber   int               `json:"table_number"`
	PaidAt        time.Time         `json:"paid_at"`
	Lines         []ReceiptJobLine  `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Change        decimal.Decimal   `json:"change"`
}

type ReceiptJobLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type ReceiptWorker struct {
	storagePath string
}

func NewReceiptWorker(storagePath string) *ReceiptWorker {
	return &ReceiptWorker{storagePath: storagePath}
}

// Process renders the receipt PDF. Returning an error lets the pool retry.
func (w *ReceiptWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payload will never succeed — drop it
	}

	receipt := &infra.Receipt{
		TableNumber:   payload.TableNumber,
		PaidAt:        payload.PaidAt,
		Total:         payload.Total,
		PaymentMethod: payload.PaymentMethod,
		AmountPaid:    payload.AmountPaid,
		Change:        payload.Change,
	}
	for _, line := range payload.Lines {
		receipt.Lines = append(receipt.Lines, infra.ReceiptLine{
			Name:     line.Name,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal,
		})
	}

	path, err := infra.GenerateReceiptPDF(receipt, w.storagePath)
	if err != nil {
		log.Error().Err(err).Int("table", payload.TableNumber).Msg("receipt_worker: PDF generation failed")
		return err
	}
	log.Info().Int("table", payload.TableNumber).Str("path", path).Msg("receipt_worker: receipt generated")
	return nil
}
