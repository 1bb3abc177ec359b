package model

import "fmt"

// OrderStatus is the lifecycle state of a kitchen ticket. Values are the
// localized strings the clients display and the database stores — one enum,
// validated at the API boundary, no second mapping layer.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDENTE"
	OrderPreparing OrderStatus = "PREPARANDO"
	OrderReady     OrderStatus = "PRONTO"
	OrderDelivered OrderStatus = "ENTREGUE"
	OrderPaid      OrderStatus = "PAGO"
)

// orderTransitions encodes the forward-only lifecycle. Settlement (PAGO) is
// reachable from any unpaid state because the cashier can close a table
// whether or not the kitchen marked delivery.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderPaid},
	OrderPreparing: {OrderReady, OrderPaid},
	OrderReady:     {OrderDelivered, OrderPaid},
	OrderDelivered: {OrderPaid},
	OrderPaid:      {},
}

// ParseOrderStatus validates a wire string against the known status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderPaid:
		return st, nil
	default:
		return "", fmt.Errorf("status de pedido desconhecido: %q", s)
	}
}

// CanTransition reports whether moving from s to next is a legal forward step.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsOpen reports whether the order still counts toward table occupancy.
func (s OrderStatus) IsOpen() bool { return s != OrderPaid }

// TableStatus is the occupancy state of a table.
// PendingPayment is declared by the clients but never written by the server.
type TableStatus string

const (
	TableAvailable      TableStatus = "AVAILABLE"
	TableOccupied       TableStatus = "OCCUPIED"
	TablePendingPayment TableStatus = "PENDING_PAYMENT"
)

// PaymentMethod labels how a bill was settled. Only DINHEIRO carries a
// tendered-amount check; the rest are labels.
type PaymentMethod string

const (
	PayCash        PaymentMethod = "DINHEIRO"
	PayPix         PaymentMethod = "PIX"
	PayDebit       PaymentMethod = "DÉBITO"
	PayCredit      PaymentMethod = "CRÉDITO"
	PayMealVoucher PaymentMethod = "ALIMENTAÇÃO"
	PayMealCard    PaymentMethod = "REFEIÇÃO"
)

// ParsePaymentMethod validates a wire string against the known method set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PayCash, PayPix, PayDebit, PayCredit, PayMealVoucher, PayMealCard:
		return m, nil
	default:
		return "", fmt.Errorf("forma de pagamento desconhecida: %q", s)
	}
}

// Cash session states and transaction types.
const (
	SessionOpen   = "OPEN"
	SessionClosed = "CLOSED"

	CashIn  = "APORTE"  // manual cash added to the register
	CashOut = "SANGRIA" // manual cash removed from the register
)
