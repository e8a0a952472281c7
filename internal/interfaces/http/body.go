package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/validation"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/shopspring/decimal"
)

// errInvalidBody cuerpo que no es un objeto JSON decodificable.
var errInvalidBody = errors.New("cuerpo inválido")

// orderMoneyFields importes de los bodies de pedidos (alta y PATCH).
var orderMoneyFields = []string{"price", "advanceAmount", "paidAmount"}

// parseBody decodifica el body en out. Si la decodificación falla por importes que no son
// números válidos devuelve un *domain.ValidationError con esos campos; cualquier otro fallo
// es errInvalidBody.
func parseBody(c *fiber.Ctx, out any, moneyFields ...string) error {
	if err := c.BodyParser(out); err == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return errInvalidBody
	}
	verr := &domain.ValidationError{}
	for _, field := range moneyFields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(value); err != nil {
			verr.Add(field, validation.MoneyMessage)
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return errInvalidBody
}
