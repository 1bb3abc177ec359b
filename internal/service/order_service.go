package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/notify"
	"github.com/claudioasousa/Espetaria-PRO/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("pedido não encontrado")
	ErrTableNotFound     = errors.New("mesa não encontrada")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrPaymentRequired   = errors.New("forma de pagamento obrigatória para pagar")
	ErrInsufficientCash  = errors.New("valor recebido menor que o total")
)

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error)
}

type orderService struct {
	repo        repository.OrderRepository
	tableRepo   repository.TableRepository
	productRepo repository.ProductRepository
	notifier    *notify.Notifier
}

func NewOrderService(
	repo repository.OrderRepository,
	tableRepo repository.TableRepository,
	productRepo repository.ProductRepository,
	notifier *notify.Notifier,
) OrderService {
	return &orderService{
		repo:        repo,
		tableRepo:   tableRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Deduplicate on the client-generated id (retried POSTs return the
//      original order instead of a duplicate ticket)
//   2. Validate the table exists
//   3. Resolve products, copy name/price/category into the line items and
//      compute the total server-side — the client-sent total is ignored
//   4. BEGIN TX: insert order + items, flip the table to OCCUPIED
//   5. COMMIT, then notify subscribers

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// 1. Deduplicate retried submissions
	if req.ID != nil && *req.ID != "" {
		if existing, err := s.repo.FindByClientRef(ctx, *req.ID); err == nil {
			return orderToResponse(existing), nil
		}
	}

	// 2. Table must exist
	if _, err := s.tableRepo.FindByNumber(ctx, req.TableNumber); err != nil {
		return nil, ErrTableNotFound
	}

	// 3. Resolve products and compute the total (pre-flight, outside TX)
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("productId inválido: %w", err)
		}
		ids = append(ids, pid)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	order := model.Order{
		TableNumber: req.TableNumber,
		WaiterName:  req.WaiterName,
		Status:      model.OrderPending,
	}
	if req.ID != nil && *req.ID != "" {
		order.ClientRef = req.ID
	}

	total := decimal.Zero
	for i, item := range req.Items {
		p, ok := byID[ids[i]]
		if !ok {
			return nil, fmt.Errorf("produto %s não encontrado", item.ProductID)
		}
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  category,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	order.Total = total

	// 4. ACID transaction: order + occupancy move together
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &order); err != nil {
			return err
		}
		return s.tableRepo.UpdateStatusTx(tx, req.TableNumber, model.TableOccupied)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	s.notifier.Publish(ctx, notify.TopicTables)
	return orderToResponse(&order), nil
}

// ── UpdateStatus ──────────────────────────────────────────────────────────────
// Kitchen advances PENDENTE → PREPARANDO → PRONTO → ENTREGUE; the cashier can
// jump any open state straight to PAGO. Paying the last open order of a table
// releases the table in the same transaction.

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	next, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, next)
	}

	if next == model.OrderPaid {
		if req.PaymentMethod == nil {
			return nil, ErrPaymentRequired
		}
		method, err := model.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		amount := order.Total
		if method == model.PayCash {
			if req.AmountPaid == nil {
				return nil, errors.New("valor recebido obrigatório para pagamento em dinheiro")
			}
			if req.AmountPaid.LessThan(order.Total) {
				return nil, ErrInsufficientCash
			}
			amount = *req.AmountPaid
		} else if req.AmountPaid != nil {
			amount = *req.AmountPaid
		}
		order.PaymentMethod = &method
		order.AmountPaid = &amount
	}
	order.Status = next

	tableReleased := false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, order); err != nil {
			return err
		}
		if next != model.OrderPaid {
			return nil
		}
		open, err := s.repo.CountOpenByTableTx(tx, order.TableNumber)
		if err != nil {
			return err
		}
		if open == 0 {
			tableReleased = true
			return s.tableRepo.UpdateStatusTx(tx, order.TableNumber, model.TableAvailable)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Publish(ctx, notify.TopicOrders)
	if tableReleased {
		s.notifier.Publish(ctx, notify.TopicTables)
	}
	return orderToResponse(order), nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return orderToResponse(order), nil
}

// List returns the open-order snapshot by default (what the kitchen and the
// waiters poll), oldest first.
func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	if filter.Status != "" {
		if _, err := model.ParseOrderStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *orderToResponse(&orders[i]))
	}
	return out, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Category:  item.Category,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
			Notes:     item.Notes,
		})
	}
	resp := &dto.OrderResponse{
		ID:          o.ID.String(),
		TableNumber: o.TableNumber,
		WaiterName:  o.WaiterName,
		Items:       items,
		Status:      string(o.Status),
		Total:       o.Total,
		AmountPaid:  o.AmountPaid,
		Timestamp:   o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if o.PaymentMethod != nil {
		m := string(*o.PaymentMethod)
		resp.PaymentMethod = &m
	}
	return resp
}
