package payment

import (
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DerivePaidAmount calcula lo cobrado al registrar un pedido según la forma de pago (servicio de dominio).
//
//	full     → price
//	advance  → advanceAmount
//	delivery → 0
//
// Es una convención del llamador: el repositorio persiste lo que recibe.
func DerivePaidAmount(method entity.PaymentMethod, price, advanceAmount decimal.Decimal) decimal.Decimal {
	switch method {
	case entity.PaymentFull:
		return price
	case entity.PaymentAdvance:
		return advanceAmount
	default:
		return decimal.Zero
	}
}
