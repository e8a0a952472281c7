package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderFilter filtros de listado. Los campos vacíos no restringen; los presentes se combinan con AND.
type OrderFilter struct {
	Status        entity.OrderStatus
	PaymentMethod entity.PaymentMethod
	CustomerID    string
	Search        string     // subcadena sin distinguir mayúsculas sobre nombre de cliente o producto
	StartDate     *time.Time // created_at >= StartDate
	EndDate       *time.Time // created_at <= EndDate
	DeliveryFrom  *time.Time // delivery_date >= DeliveryFrom
	DeliveryTo    *time.Time // delivery_date <= DeliveryTo
}

// Matches evalúa el filtro en memoria con la misma semántica que la consulta SQL.
func (f OrderFilter) Matches(o *entity.OrderWithCustomer) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.PaymentMethod != "" && o.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.Customer.Name), needle) &&
			!strings.Contains(strings.ToLower(o.Product), needle) {
			return false
		}
	}
	if f.StartDate != nil && o.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && o.CreatedAt.After(*f.EndDate) {
		return false
	}
	if f.DeliveryFrom != nil && (o.DeliveryDate == nil || o.DeliveryDate.Before(*f.DeliveryFrom)) {
		return false
	}
	if f.DeliveryTo != nil && (o.DeliveryDate == nil || o.DeliveryDate.After(*f.DeliveryTo)) {
		return false
	}
	return true
}

// OrderPatch cambios parciales de un pedido: solo se aplican los campos no nil.
type OrderPatch struct {
	Product           *string
	Theme             *string
	Description       *string
	Price             *decimal.Decimal
	Status            *entity.OrderStatus
	PaymentMethod     *entity.PaymentMethod
	AdvanceAmount     *decimal.Decimal
	PaidAmount        *decimal.Decimal
	DeliveryDate      *time.Time
	ClearDeliveryDate bool // pone delivery_date a NULL; tiene prioridad sobre DeliveryDate
	DeliveryAddress   *string
	ProductImage      *string
	Notes             *string
}

// Apply aplica el patch sobre un pedido en memoria (misma semántica que el UPDATE SQL).
func (p OrderPatch) Apply(o *entity.Order) {
	if p.Product != nil {
		o.Product = *p.Product
	}
	if p.Theme != nil {
		o.Theme = *p.Theme
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Price != nil {
		o.Price = *p.Price
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.AdvanceAmount != nil {
		o.AdvanceAmount = *p.AdvanceAmount
	}
	if p.PaidAmount != nil {
		o.PaidAmount = *p.PaidAmount
	}
	switch {
	case p.ClearDeliveryDate:
		o.DeliveryDate = nil
	case p.DeliveryDate != nil:
		d := *p.DeliveryDate
		o.DeliveryDate = &d
	}
	if p.DeliveryAddress != nil {
		o.DeliveryAddress = *p.DeliveryAddress
	}
	if p.ProductImage != nil {
		o.ProductImage = *p.ProductImage
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve el pedido con su cliente o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.OrderWithCustomer, error)
	// List devuelve los pedidos que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filter OrderFilter) ([]*entity.OrderWithCustomer, error)
	// Update aplica el patch y fija updated_at. domain.ErrNotFound si el id no existe.
	Update(ctx context.Context, id string, patch OrderPatch, updatedAt time.Time) (*entity.Order, error)
	// Delete elimina el pedido; devuelve false si no existía. No toca al cliente.
	Delete(ctx context.Context, id string) (bool, error)
}
