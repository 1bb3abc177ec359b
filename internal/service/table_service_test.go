package service_test

import (
	"context"
	"testing"

	"github.com/claudioasousa/Espetaria-PRO/internal/dto"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTableSvc() (service.TableService, service.OrderService, *stubOrderRepo, *stubTableRepo, *stubProductRepo) {
	orderRepo := newStubOrderRepo()
	tableRepo := newStubTableRepo(1, 2, 3, 4)
	productRepo := newStubProductRepo()
	orderSvc := service.NewOrderService(orderRepo, tableRepo, productRepo, nil)
	tableSvc := service.NewTableService(tableRepo, orderRepo, nil, nil)
	return tableSvc, orderSvc, orderRepo, tableRepo, productRepo
}

func placeOrder(t *testing.T, orderSvc service.OrderService, table int, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	resp, err := orderSvc.Create(context.Background(), dto.CreateOrderRequest{
		TableNumber: table,
		Items:       items,
	})
	require.NoError(t, err)
	return resp
}

func TestBill_MergesRepeatedProducts(t *testing.T) {
	tableSvc, orderSvc, _, _, productRepo := buildTableSvc()
	carne := seedProduct(productRepo, "Espetinho de Carne", "12.00", "Espetinhos")
	cerveja := seedProduct(productRepo, "Cerveja 600ml", "14.00", "Bebidas")

	placeOrder(t, orderSvc, 4,
		dto.OrderItemRequest{ProductID: carne.ID.String(), Quantity: 2},
		dto.OrderItemRequest{ProductID: cerveja.ID.String(), Quantity: 1},
	)
	placeOrder(t, orderSvc, 4,
		dto.OrderItemRequest{ProductID: carne.ID.String(), Quantity: 3},
	)

	bill, err := tableSvc.Bill(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, bill.OrderCount)
	// 2×12 + 14 + 3×12 = 74
	assert.Equal(t, "74", bill.Total.String())

	require.Len(t, bill.Items, 2)
	assert.Equal(t, "Espetinho de Carne", bill.Items[0].Name)
	assert.Equal(t, 5, bill.Items[0].Quantity)
	assert.Equal(t, "60", bill.Items[0].Subtotal.String())
	assert.Equal(t, "Cerveja 600ml", bill.Items[1].Name)
	assert.Equal(t, 1, bill.Items[1].Quantity)
}

func TestBill_EmptyTable(t *testing.T) {
	tableSvc, _, _, _, _ := buildTableSvc()

	bill, err := tableSvc.Bill(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, bill.OrderCount)
	assert.Empty(t, bill.Items)
	assert.True(t, bill.Total.IsZero())
}

func TestBill_UnknownTable(t *testing.T) {
	tableSvc, _, _, _, _ := buildTableSvc()
	_, err := tableSvc.Bill(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrTableNotFound)
}

func TestPayTable_CashWithChange(t *testing.T) {
	tableSvc, orderSvc, orderRepo, tableRepo, productRepo := buildTableSvc()
	carne := seedProduct(productRepo, "Espetinho de Carne", "12.00", "Espetinhos")

	placeOrder(t, orderSvc, 4, dto.OrderItemRequest{ProductID: carne.ID.String(), Quantity: 2})

	tendered := decimal.NewFromInt(30)
	resp, err := tableSvc.Pay(context.Background(), 4, dto.PayTableRequest{
		PaymentMethod: "DINHEIRO",
		AmountPaid:    &tendered,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.OrdersPaid)
	assert.Equal(t, "24", resp.Total.String())
	assert.Equal(t, "6", resp.Change.String())

	// Every order settled, table released
	for _, o := range orderRepo.orders {
		assert.Equal(t, model.OrderPaid, o.Status)
	}
	assert.Equal(t, model.TableAvailable, tableRepo.tables[4].Status)
}

func TestPayTable_SettlesAllOrdersAtOnce(t *testing.T) {
	tableSvc, orderSvc, orderRepo, tableRepo, productRepo := buildTableSvc()
	frango := seedProduct(productRepo, "Espetinho de Frango", "10.00", "Espetinhos")

	placeOrder(t, orderSvc, 2, dto.OrderItemRequest{ProductID: frango.ID.String(), Quantity: 1})
	placeOrder(t, orderSvc, 2, dto.OrderItemRequest{ProductID: frango.ID.String(), Quantity: 2})
	placeOrder(t, orderSvc, 2, dto.OrderItemRequest{ProductID: frango.ID.String(), Quantity: 1})

	resp, err := tableSvc.Pay(context.Background(), 2, dto.PayTableRequest{PaymentMethod: "PIX"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.OrdersPaid)
	assert.Equal(t, "40", resp.Total.String())
	assert.True(t, resp.Change.IsZero())

	for _, o := range orderRepo.orders {
		assert.Equal(t, model.OrderPaid, o.Status)
		require.NotNil(t, o.PaymentMethod)
		assert.Equal(t, model.PayPix, *o.PaymentMethod)
	}
	assert.Equal(t, model.TableAvailable, tableRepo.tables[2].Status)
}

func TestPayTable_InsufficientCashChangesNothing(t *testing.T) {
	tableSvc, orderSvc, orderRepo, tableRepo, productRepo := buildTableSvc()
	carne := seedProduct(productRepo, "Espetinho de Carne", "12.00", "Espetinhos")

	placeOrder(t, orderSvc, 4, dto.OrderItemRequest{ProductID: carne.ID.String(), Quantity: 2})

	short := decimal.NewFromInt(10)
	_, err := tableSvc.Pay(context.Background(), 4, dto.PayTableRequest{
		PaymentMethod: "DINHEIRO",
		AmountPaid:    &short,
	})
	assert.ErrorIs(t, err, service.ErrInsufficientCash)

	// Rejected settlement leaves the world untouched
	for _, o := range orderRepo.orders {
		assert.NotEqual(t, model.OrderPaid, o.Status)
	}
	assert.Equal(t, model.TableOccupied, tableRepo.tables[4].Status)
}

func TestPayTable_NothingOpen(t *testing.T) {
	tableSvc, _, _, _, _ := buildTableSvc()

	_, err := tableSvc.Pay(context.Background(), 1, dto.PayTableRequest{PaymentMethod: "PIX"})
	assert.ErrorIs(t, err, service.ErrNothingToPay)
}

func TestPayTable_UnknownMethod(t *testing.T) {
	tableSvc, orderSvc, _, _, productRepo := buildTableSvc()
	p := seedProduct(productRepo, "Suco Natural", "8.00", "Bebidas")
	placeOrder(t, orderSvc, 3, dto.OrderItemRequest{ProductID: p.ID.String(), Quantity: 1})

	_, err := tableSvc.Pay(context.Background(), 3, dto.PayTableRequest{PaymentMethod: "CHEQUE"})
	assert.ErrorContains(t, err, "desconhecida")
}
