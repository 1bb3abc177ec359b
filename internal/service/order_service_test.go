package service_test

import (
	"context"
	"testing"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrderSvc() (service.OrderService, *stubOrderRepo, *stubTableRepo, *stubProductRepo) {
	orderRepo := newStubOrderRepo()
	tableRepo := newStubTableRepo(1, 2, 3, 4, 5)
	productRepo := newStubProductRepo()
	svc := service.NewOrderService(orderRepo, tableRepo, productRepo, nil)
	return svc, orderRepo, tableRepo, productRepo
}

func TestCreateOrder_ComputesTotalServerSide(t *testing.T) {
	svc, _, tableRepo, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Espetinho de Carne", "12.00", "Espetinhos")

	// The client sends a bogus total — the server must ignore it.
	bogus := decimal.NewFromInt(1)
	resp, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 4,
		WaiterName:  "Ana",
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
		Total:       &bogus,
	})
	require.NoError(t, err)
	assert.Equal(t, "24", resp.Total.String())
	assert.Equal(t, "PENDENTE", resp.Status)
	assert.Equal(t, 4, resp.TableNumber)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Espetinho de Carne", resp.Items[0].Name)
	assert.Equal(t, "Espetinhos", resp.Items[0].Category)

	// Occupancy flips in the same operation
	assert.Equal(t, model.TableOccupied, tableRepo.tables[4].Status)
}

func TestCreateOrder_UnknownTable(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Pão de Alho", "8.00", "Acompanhamentos")

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 99,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrTableNotFound)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc, _, _, _ := buildOrderSvc()

	_, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestCreateOrder_IdempotentClientRef(t *testing.T) {
	svc, orderRepo, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Cerveja Long Neck", "9.00", "Bebidas")
	ref := uuid.NewString()

	req := dto.CreateOrderRequest{
		ID:          &ref,
		TableNumber: 2,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 3}},
	}
	resp1, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Retried POST with the same client id returns the same order
	resp2, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, resp1.ID, resp2.ID)
	assert.Len(t, orderRepo.orders, 1)
}

func TestUpdateStatus_KitchenFlow(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Espetinho de Frango", "10.00", "Espetinhos")

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	for _, next := range []string{"PREPARANDO", "PRONTO", "ENTREGUE"} {
		resp, err := svc.UpdateStatus(context.Background(), id, dto.UpdateOrderStatusRequest{Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}
}

func TestUpdateStatus_RejectsSkippedStep(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Farofa", "4.00", "Acompanhamentos")

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	// PENDENTE → PRONTO skips PREPARANDO
	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(created.ID),
		dto.UpdateOrderStatusRequest{Status: "PRONTO"})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Vinagrete", "5.00", "Acompanhamentos")

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(created.ID),
		dto.UpdateOrderStatusRequest{Status: "CANCELADO"})
	assert.ErrorContains(t, err, "desconhecido")
}

func TestUpdateStatus_PayCashRequiresSufficientAmount(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Espetinho de Carne", "12.00", "Espetinhos")

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 4,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	method := "DINHEIRO"

	// No tendered amount
	_, err = svc.UpdateStatus(context.Background(), id,
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method})
	assert.Error(t, err)

	// Tendered 10.00 < 24.00
	short := decimal.NewFromInt(10)
	_, err = svc.UpdateStatus(context.Background(), id,
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method, AmountPaid: &short})
	assert.ErrorIs(t, err, service.ErrInsufficientCash)

	// Tendered 30.00 settles it
	tendered := decimal.NewFromInt(30)
	resp, err := svc.UpdateStatus(context.Background(), id,
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method, AmountPaid: &tendered})
	require.NoError(t, err)
	assert.Equal(t, "PAGO", resp.Status)
	assert.Equal(t, "30", resp.AmountPaid.String())
}

func TestUpdateStatus_PayWithoutMethod(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Caipirinha", "15.00", "Bebidas")

	created, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 5,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(created.ID),
		dto.UpdateOrderStatusRequest{Status: "PAGO"})
	assert.ErrorIs(t, err, service.ErrPaymentRequired)
}

func TestUpdateStatus_LastPaidOrderReleasesTable(t *testing.T) {
	svc, _, tableRepo, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Refrigerante Lata", "6.00", "Bebidas")

	first, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 2,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 2,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	method := "PIX"
	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(first.ID),
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method})
	require.NoError(t, err)
	// One order still open — table stays occupied
	assert.Equal(t, model.TableOccupied, tableRepo.tables[2].Status)

	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(second.ID),
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method})
	require.NoError(t, err)
	assert.Equal(t, model.TableAvailable, tableRepo.tables[2].Status)
}

func TestListOrders_DefaultExcludesPaid(t *testing.T) {
	svc, _, _, productRepo := buildOrderSvc()
	p := seedProduct(productRepo, "Água Mineral", "4.00", "Bebidas")

	open, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	paid, err := svc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	method := "PIX"
	_, err = svc.UpdateStatus(context.Background(), uuid.MustParse(paid.ID),
		dto.UpdateOrderStatusRequest{Status: "PAGO", PaymentMethod: &method})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), dto.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)

	all, err := svc.List(context.Background(), dto.OrderFilter{All: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
