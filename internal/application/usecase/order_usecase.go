package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/internal/application/validation"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/payment"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// OrderUseCase casos de uso del ciclo de vida de un pedido.
//
// Los estados se pueden cambiar libremente (no hay máquina de estados) y la foto del
// producto se puede asociar en cualquier estado. Cualquier cambio invalida la caché
// del dashboard.
type OrderUseCase struct {
	tx        OrderTxRunner
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	storage   ports.ImageStorage
	receipts  ports.ReceiptGenerator
	cache     ports.DashboardCache
	validator *validation.Validator
	limits    ImageLimits
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewOrderUseCase(
	tx OrderTxRunner,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	storage ports.ImageStorage,
	receipts ports.ReceiptGenerator,
	cache ports.DashboardCache,
	v *validation.Validator,
	limits ImageLimits,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tx:        tx,
		orders:    orders,
		customers: customers,
		storage:   storage,
		receipts:  receipts,
		cache:     cache,
		validator: v,
		limits:    limits,
		log:       log,
		now:       time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// Create registra un pedido. Resuelve (o crea) el cliente por teléfono e inserta el pedido
// en la misma transacción. Status por defecto: pending. PaidAmount, si no se envía,
// se deriva de la forma de pago.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	var deliveryDate *time.Time
	if in.DeliveryDate != "" {
		d, err := parseDate(in.DeliveryDate)
		if err != nil {
			return nil, domain.NewValidationError("deliveryDate", "fecha inválida")
		}
		deliveryDate = &d
	}

	status := entity.OrderStatusPending
	if in.Status != "" {
		status = entity.OrderStatus(in.Status)
	}
	method := entity.PaymentMethod(in.PaymentMethod)
	advance := decimal.Zero
	if in.AdvanceAmount != nil {
		advance = *in.AdvanceAmount
	}
	paid := payment.DerivePaidAmount(method, *in.Price, advance)
	if in.PaidAmount != nil {
		paid = *in.PaidAmount
	}

	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		Product:         in.Product,
		Theme:           in.Theme,
		Description:     in.Description,
		Price:           *in.Price,
		Status:          status,
		PaymentMethod:   method,
		AdvanceAmount:   advance,
		PaidAmount:      paid,
		DeliveryDate:    deliveryDate,
		DeliveryAddress: in.DeliveryAddress,
		ProductImage:    in.ProductImage,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var customer *entity.Customer
	err := uc.tx.RunOrders(ctx, func(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) error {
		c, err := ResolveForOrder(ctx, customerRepo, in.CustomerName, in.CustomerPhone, in.CustomerEmail, now)
		if err != nil {
			return err
		}
		customer = c
		order.CustomerID = c.ID
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateDashboard(ctx)

	out := ToOrderResponse(&entity.OrderWithCustomer{Order: *order, Customer: *customer})
	return &out, nil
}

// GetByID obtiene un pedido con su cliente; (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// List devuelve los pedidos filtrados, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, q dto.OrderListQuery) ([]dto.OrderResponse, error) {
	list, err := uc.list(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

func (uc *OrderUseCase) list(ctx context.Context, q dto.OrderListQuery) ([]*entity.OrderWithCustomer, error) {
	if err := uc.validator.Struct(q); err != nil {
		return nil, err
	}
	filter, err := buildOrderFilter(q)
	if err != nil {
		return nil, err
	}
	return uc.orders.List(ctx, filter)
}

// Update aplica los campos presentes. domain.ErrNotFound si el pedido no existe.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	patch, err := buildOrderPatch(in)
	if err != nil {
		return nil, err
	}
	o, err := uc.applyPatch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// SetCompletionImage asocia la URL de la foto del producto terminado. No exige status completed.
func (uc *OrderUseCase) SetCompletionImage(ctx context.Context, id, imageURL string) (*dto.OrderResponse, error) {
	o, err := uc.applyPatch(ctx, id, repository.OrderPatch{ProductImage: &imageURL})
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// Delete elimina un pedido sin tocar a su cliente. Borrar un pedido inexistente no es error.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		uc.log.Debug().Str("order_id", id).Msg("borrado de pedido inexistente")
		return nil
	}
	uc.invalidateDashboard(ctx)
	return nil
}

func (uc *OrderUseCase) applyPatch(ctx context.Context, id string, patch repository.OrderPatch) (*entity.OrderWithCustomer, error) {
	updated, err := uc.orders.Update(ctx, id, patch, uc.now())
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, updated.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("pedido %s: cliente %s no encontrado", id, updated.CustomerID)
	}
	uc.invalidateDashboard(ctx)
	return &entity.OrderWithCustomer{Order: *updated, Customer: *customer}, nil
}

func (uc *OrderUseCase) invalidateDashboard(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché del dashboard")
	}
}

func buildOrderFilter(q dto.OrderListQuery) (repository.OrderFilter, error) {
	f := repository.OrderFilter{
		CustomerID: q.CustomerID,
		Search:     q.Search,
	}
	if q.Status != "" && q.Status != "all" {
		f.Status = entity.OrderStatus(q.Status)
	}
	if q.PaymentMethod != "" && q.PaymentMethod != "all" {
		f.PaymentMethod = entity.PaymentMethod(q.PaymentMethod)
	}

	verr := &domain.ValidationError{}
	bound := func(field, raw string, parse func(string) (time.Time, error)) *time.Time {
		if raw == "" {
			return nil
		}
		t, err := parse(raw)
		if err != nil {
			verr.Add(field, "fecha inválida")
			return nil
		}
		return &t
	}
	f.StartDate = bound("startDate", q.StartDate, parseDate)
	f.EndDate = bound("endDate", q.EndDate, parseEndDate)
	f.DeliveryFrom = bound("deliveryFrom", q.DeliveryFrom, parseDate)
	f.DeliveryTo = bound("deliveryTo", q.DeliveryTo, parseEndDate)
	if verr.HasErrors() {
		return repository.OrderFilter{}, verr
	}
	return f, nil
}

func buildOrderPatch(in dto.UpdateOrderRequest) (repository.OrderPatch, error) {
	p := repository.OrderPatch{
		Product:         in.Product,
		Theme:           in.Theme,
		Description:     in.Description,
		Price:           in.Price,
		AdvanceAmount:   in.AdvanceAmount,
		PaidAmount:      in.PaidAmount,
		DeliveryAddress: in.DeliveryAddress,
		ProductImage:    in.ProductImage,
		Notes:           in.Notes,
	}
	if in.Status != nil {
		s := entity.OrderStatus(*in.Status)
		p.Status = &s
	}
	if in.PaymentMethod != nil {
		m := entity.PaymentMethod(*in.PaymentMethod)
		p.PaymentMethod = &m
	}
	if in.DeliveryDate != nil {
		if *in.DeliveryDate == "" {
			p.ClearDeliveryDate = true
		} else {
			d, err := parseDate(*in.DeliveryDate)
			if err != nil {
				return repository.OrderPatch{}, domain.NewValidationError("deliveryDate", "fecha inválida")
			}
			p.DeliveryDate = &d
		}
	}
	return p, nil
}
