package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
// Las transiciones no están restringidas: cualquier estado puede pasar a cualquier otro.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // estado inicial
	OrderStatusInProgress OrderStatus = "in_progress" // en elaboración
	OrderStatusCompleted  OrderStatus = "completed"   // terminado; habilita la foto en la UI
)

// OrderStatuses lista los estados válidos en orden de ciclo de vida.
var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted}

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Active indica si el pedido cuenta como activo (pendiente o en curso).
func (s OrderStatus) Active() bool {
	return s == OrderStatusPending || s == OrderStatusInProgress
}

// PaymentMethod forma de pago acordada con el cliente.
type PaymentMethod string

const (
	PaymentDelivery PaymentMethod = "delivery" // paga al recibir
	PaymentAdvance  PaymentMethod = "advance"  // anticipo parcial
	PaymentFull     PaymentMethod = "full"     // pagado por completo
)

// PaymentMethods lista las formas de pago válidas.
var PaymentMethods = []PaymentMethod{PaymentDelivery, PaymentAdvance, PaymentFull}

// Valid indica si la forma de pago es una de las conocidas.
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// PaymentState situación de cobro derivada de price y paidAmount.
type PaymentState string

const (
	PaymentStatePaid    PaymentState = "paid"
	PaymentStatePartial PaymentState = "partial"
	PaymentStatePending PaymentState = "pending"
)

// Order representa un pedido de un cliente.
type Order struct {
	ID              string
	CustomerID      string
	Product         string
	Theme           string
	Description     string
	Price           decimal.Decimal
	Status          OrderStatus
	PaymentMethod   PaymentMethod
	AdvanceAmount   decimal.Decimal
	PaidAmount      decimal.Decimal // no se limita a Price
	DeliveryDate    *time.Time
	DeliveryAddress string
	ProductImage    string // URL pública de la foto del producto terminado
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Outstanding importe pendiente de cobro (nunca negativo).
func (o *Order) Outstanding() decimal.Decimal {
	rest := o.Price.Sub(o.PaidAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// PaymentState devuelve paid si lo cobrado cubre el precio, partial si hay algo cobrado y pending si nada.
func (o *Order) PaymentState() PaymentState {
	switch {
	case o.PaidAmount.GreaterThanOrEqual(o.Price):
		return PaymentStatePaid
	case o.PaidAmount.IsPositive():
		return PaymentStatePartial
	default:
		return PaymentStatePending
	}
}

// OrderWithCustomer pedido junto con su cliente (join).
type OrderWithCustomer struct {
	Order
	Customer Customer
}
