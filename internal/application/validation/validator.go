// Package validation valida los DTOs de entrada con go-playground/validator y traduce
// los fallos a domain.ValidationError (un mensaje por campo).
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Validator envoltorio sobre validator.Validate con las reglas propias registradas:
//   - money:   importe decimal no negativo
//   - anydate: fecha interpretable por dateparse (ISO 8601, YYYY-MM-DD, etc.)
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Es seguro para uso concurrente.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("money", validMoney)
	_ = v.RegisterValidation("anydate", validAnyDate)
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError con todos los campos inválidos.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// fieldName usa el nombre JSON (o el de query) en los errores.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// decimalValue expone decimal.Decimal como texto para que apliquen required/money.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// maxMoney cota exclusiva de NUMERIC(10,2): hasta 8 dígitos enteros.
var maxMoney = decimal.New(1, 8)

// ValidMoney indica si d es un importe almacenable: no negativo, < 10^8 y con 2 decimales como máximo.
func ValidMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(maxMoney) && d.Equal(d.Truncate(2))
}

func validMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && ValidMoney(d)
}

func validAnyDate(fl validator.FieldLevel) bool {
	_, err := dateparse.ParseAny(fl.Field().String())
	return err == nil
}

// MoneyMessage mensaje para importes mal formados o fuera de rango.
const MoneyMessage = "debe ser un importe no negativo con hasta 8 enteros y 2 decimales"

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "email inválido"
	case "url":
		return "URL inválida"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min":
		return "longitud mínima " + fe.Param()
	case "max":
		return "longitud máxima " + fe.Param()
	case "money":
		return MoneyMessage
	case "anydate":
		return "fecha inválida"
	default:
		return "valor inválido"
	}
}
