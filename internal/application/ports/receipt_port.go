package ports

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.OrderWithCustomer) ([]byte, error)
}
