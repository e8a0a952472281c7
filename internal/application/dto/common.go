package dto

import (
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP. Details solo se rellena en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// Money formatea un importe con dos decimales fijos ("20.00").
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
