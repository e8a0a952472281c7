package postgres

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// sqlArgs acumula argumentos posicionales y devuelve su placeholder ($n).
type sqlArgs []any

func (a *sqlArgs) add(v any) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// buildOrderWhere traduce el filtro a una cláusula WHERE parametrizada sobre el alias o (orders)
// y c (customers). Devuelve "" si no hay condiciones.
func buildOrderWhere(f repository.OrderFilter) (string, []any) {
	var args sqlArgs
	var conds []string

	if f.Status != "" {
		conds = append(conds, "o.status = "+args.add(string(f.Status)))
	}
	if f.PaymentMethod != "" {
		conds = append(conds, "o.payment_method = "+args.add(string(f.PaymentMethod)))
	}
	if f.CustomerID != "" {
		conds = append(conds, "o.customer_id = "+args.add(f.CustomerID))
	}
	if f.Search != "" {
		p := args.add("%" + escapeLike(f.Search) + "%")
		conds = append(conds, "(c.name ILIKE "+p+" OR o.product ILIKE "+p+")")
	}
	if f.StartDate != nil {
		conds = append(conds, "o.created_at >= "+args.add(*f.StartDate))
	}
	if f.EndDate != nil {
		conds = append(conds, "o.created_at <= "+args.add(*f.EndDate))
	}
	if f.DeliveryFrom != nil {
		conds = append(conds, "o.delivery_date >= "+args.add(*f.DeliveryFrom))
	}
	if f.DeliveryTo != nil {
		conds = append(conds, "o.delivery_date <= "+args.add(*f.DeliveryTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildOrderSet traduce el patch a la lista SET del UPDATE. El primer argumento ($1) es el id
// y updated_at siempre se fija.
func buildOrderSet(id string, p repository.OrderPatch, updatedAt any) (string, []any) {
	args := sqlArgs{id}
	sets := []string{"updated_at = " + args.add(updatedAt)}
	set := func(col string, v any) {
		sets = append(sets, col+" = "+args.add(v))
	}

	if p.Product != nil {
		set("product", *p.Product)
	}
	if p.Theme != nil {
		set("theme", *p.Theme)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Status != nil {
		set("status", string(*p.Status))
	}
	if p.PaymentMethod != nil {
		set("payment_method", string(*p.PaymentMethod))
	}
	if p.AdvanceAmount != nil {
		set("advance_amount", *p.AdvanceAmount)
	}
	if p.PaidAmount != nil {
		set("paid_amount", *p.PaidAmount)
	}
	switch {
	case p.ClearDeliveryDate:
		sets = append(sets, "delivery_date = NULL")
	case p.DeliveryDate != nil:
		set("delivery_date", *p.DeliveryDate)
	}
	if p.DeliveryAddress != nil {
		set("delivery_address", *p.DeliveryAddress)
	}
	if p.ProductImage != nil {
		set("product_image", *p.ProductImage)
	}
	if p.Notes != nil {
		set("notes", *p.Notes)
	}
	return strings.Join(sets, ", "), args
}
