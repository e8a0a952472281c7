package usecase

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderTxRunner ejecuta fn dentro de una transacción con los repositorios atados a ella.
// Si fn devuelve error se hace rollback.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ImageLimits restricciones de la foto del pedido, verificadas antes de subirla.
type ImageLimits struct {
	MaxBytes int64
}
