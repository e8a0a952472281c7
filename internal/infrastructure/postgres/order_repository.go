package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_id, product, theme, description, price, status, payment_method,
	advance_amount, paid_amount, delivery_date, delivery_address, product_image, notes,
	created_at, updated_at`

const orderJoinSelect = `
	SELECT o.id, o.customer_id, o.product, o.theme, o.description, o.price, o.status, o.payment_method,
	       o.advance_amount, o.paid_amount, o.delivery_date, o.delivery_address, o.product_image, o.notes,
	       o.created_at, o.updated_at,
	       c.id, c.name, c.phone, c.email, c.address, c.created_at
	FROM orders o
	JOIN customers c ON c.id = o.customer_id`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func orderDest(o *entity.Order) []any {
	return []any{
		&o.ID, &o.CustomerID, &o.Product, &o.Theme, &o.Description, &o.Price, &o.Status, &o.PaymentMethod,
		&o.AdvanceAmount, &o.PaidAmount, &o.DeliveryDate, &o.DeliveryAddress, &o.ProductImage, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	}
}

func scanOrderWithCustomer(row pgx.Row) (*entity.OrderWithCustomer, error) {
	var oc entity.OrderWithCustomer
	dest := append(orderDest(&oc.Order),
		&oc.Customer.ID, &oc.Customer.Name, &oc.Customer.Phone, &oc.Customer.Email,
		&oc.Customer.Address, &oc.Customer.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &oc, nil
}

// Create persiste un pedido. El cliente debe existir.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.Product, o.Theme, o.Description, o.Price, string(o.Status), string(o.PaymentMethod),
		o.AdvanceAmount, o.PaidAmount, o.DeliveryDate, o.DeliveryAddress, o.ProductImage, o.Notes,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert order: cliente %s: %w", o.CustomerID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert order", err)
	}
	return nil
}

// GetByID obtiene el pedido con su cliente; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.OrderWithCustomer, error) {
	o, err := scanOrderWithCustomer(r.q.QueryRow(ctx, orderJoinSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get order", err)
	}
	return o, nil
}

// List devuelve los pedidos que cumplen el filtro, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderWithCustomer, error) {
	where, args := buildOrderWhere(f)
	query := orderJoinSelect + " " + where + " ORDER BY o.created_at DESC, o.id"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list orders", err)
	}
	defer rows.Close()

	list := []*entity.OrderWithCustomer{}
	for rows.Next() {
		o, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, wrapErr("scan order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list orders", err)
	}
	return list, nil
}

// Update aplica el patch en una sola sentencia y devuelve la fila resultante.
func (r *OrderRepo) Update(ctx context.Context, id string, p repository.OrderPatch, updatedAt time.Time) (*entity.Order, error) {
	set, args := buildOrderSet(id, p, updatedAt)
	query := `UPDATE orders SET ` + set + ` WHERE id = $1 RETURNING ` + orderColumns

	var o entity.Order
	if err := r.q.QueryRow(ctx, query, args...).Scan(orderDest(&o)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("update order", err)
	}
	return &o, nil
}

// Delete elimina el pedido sin tocar al cliente. Devuelve false si no existía.
func (r *OrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("delete order", err)
	}
	return tag.RowsAffected() > 0, nil
}
