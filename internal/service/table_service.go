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

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNothingToPay = errors.New("mesa não possui pedidos em aberto")

type TableService interface {
	List(ctx context.Context) ([]dto.TableResponse, error)
	Bill(ctx context.Context, number int) (*dto.BillResponse, error)
	Pay(ctx context.Context, number int, req dto.PayTableRequest) (*dto.PayTableResponse, error)
}

type tableService struct {
	repo       repository.TableRepository
	orderRepo  repository.OrderRepository
	dispatcher *worker.Dispatcher
	notifier   *notify.Notifier
}

func NewTableService(
	repo repository.TableRepository,
	orderRepo repository.OrderRepository,
	dispatcher *worker.Dispatcher,
	notifier *notify.Notifier,
) TableService {
	return &tableService{
		repo:       repo,
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

func (s *tableService) List(ctx context.Context) ([]dto.TableResponse, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, dto.TableResponse{Number: t.Number, Status: string(t.Status)})
	}
	return out, nil
}

// Bill consolidates every unpaid order of the table into one bill: the same
// product across several orders collapses into a single line.
func (s *tableService) Bill(ctx context.Context, number int) (*dto.BillResponse, error) {
	if _, err := s.repo.FindByNumber(ctx, number); err != nil {
		return nil, ErrTableNotFound
	}
	orders, err := s.orderRepo.ListOpenByTable(ctx, number)
	if err != nil {
		return nil, err
	}

	items, total := mergeBillLines(orders)
	return &dto.BillResponse{
		TableNumber: number,
		OrderCount:  len(orders),
		Items:       items,
		Total:       total,
	}, nil
}

// ── Pay ───────────────────────────────────────────────────────────────────────
// Settles the whole table in one ACID transaction:
//   1. BEGIN TX: lock the table's unpaid orders (SELECT ... FOR UPDATE) so
//      concurrent checkouts serialize instead of double-charging
//   2. Validate the payment: DINHEIRO requires amount_paid >= total
//   3. Flip every order to PAGO and release the table — all or nothing
//   4. COMMIT, then enqueue the receipt PDF and notify subscribers

func (s *tableService) Pay(ctx context.Context, number int, req dto.PayTableRequest) (*dto.PayTableResponse, error) {
	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByNumber(ctx, number); err != nil {
		return nil, ErrTableNotFound
	}

	var (
		orders []model.Order
		total  decimal.Decimal
		paid   decimal.Decimal
		change decimal.Decimal
	)
	txErr := runTx(ctx, s.orderRepo.DB(), func(tx *gorm.DB) error {
		var err error
		orders, err = s.orderRepo.ListOpenByTableTx(tx, number)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return ErrNothingToPay
		}

		total = decimal.Zero
		for i := range orders {
			total = total.Add(orders[i].Total)
		}

		paid = total
		change = decimal.Zero
		if method == model.PayCash {
			if req.AmountPaid == nil {
				return errors.New("valor recebido obrigatório para pagamento em dinheiro")
			}
			if req.AmountPaid.LessThan(total) {
				return ErrInsufficientCash
			}
			paid = *req.AmountPaid
			change = paid.Sub(total)
		}

		for i := range orders {
			orders[i].Status = model.OrderPaid
			orders[i].PaymentMethod = &method
			amount := orders[i].Total
			orders[i].AmountPaid = &amount
			if err := s.orderRepo.UpdateTx(tx, &orders[i]); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, number, model.TableAvailable)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enqueueReceipt(ctx, number, orders, total, method, paid, change)
	s.notifier.Publish(ctx, notify.TopicOrders)
	s.notifier.Publish(ctx, notify.TopicTables)

	return &dto.PayTableResponse{
		TableNumber:   number,
		OrdersPaid:    len(orders),
		Total:         total,
		PaymentMethod: string(method),
		AmountPaid:    paid,
		Change:        change,
	}, nil
}

// enqueueReceipt is best-effort: a lost receipt job never rolls back a
// settlement that already committed.
func (s *tableService) enqueueReceipt(ctx context.Context, number int, orders []model.Order, total decimal.Decimal, method model.PaymentMethod, paid, change decimal.Decimal) {
	if s.dispatcher == nil {
		return
	}
	lines, _ := mergeBillLines(orders)
	payload := worker.ReceiptJobPayload{
		TableNumber:   number,
		PaidAt:        time.Now().UTC(),
		Total:         total,
		PaymentMethod: string(method),
		AmountPaid:    paid,
		Change:        change,
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, worker.ReceiptJobLine{
			Name:     line.Name,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal,
		})
	}
	if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
		log.Warn().Err(err).Int("table", number).Msg("failed to enqueue receipt job")
	}
}

// mergeBillLines folds order items into consolidated bill lines, preserving
// first-seen order, and returns the bill total.
func mergeBillLines(orders []model.Order) ([]dto.BillItem, decimal.Decimal) {
	index := make(map[string]int)
	items := make([]dto.BillItem, 0)
	total := decimal.Zero

	for _, o := range orders {
		total = total.Add(o.Total)
		for _, item := range o.Items {
			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			key := item.ProductID.String()
			if i, ok := index[key]; ok {
				items[i].Quantity += item.Quantity
				items[i].Subtotal = items[i].Subtotal.Add(subtotal)
				continue
			}
			index[key] = len(items)
			items = append(items, dto.BillItem{
				ProductID: key,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Price:     item.UnitPrice,
				Subtotal:  subtotal,
			})
		}
	}
	return items, total
}
