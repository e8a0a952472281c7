package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/validation"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CustomerUseCase registro de clientes. El teléfono identifica al cliente.
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, v *validation.Validator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, validator: v, now: time.Now}
}

// Create registra un cliente. Devuelve domain.ErrDuplicate si ya existe uno con ese teléfono.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	customer := newCustomer(in.Name, in.Phone, in.Email, in.Address, uc.now())
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(customer)
	return &out, nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// List devuelve todos los clientes, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

// Update modifica los campos presentes. Cambiar el teléfono a uno ya usado por otro cliente
// devuelve domain.ErrDuplicate.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Phone != nil && *in.Phone != c.Phone {
		other, err := uc.repo.FindByPhone(ctx, *in.Phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
		c.Phone = *in.Phone
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// ResolveForOrder devuelve el cliente con ese teléfono o lo crea con los datos del pedido.
// Un cliente existente no se actualiza: el primer nombre registrado se conserva.
func ResolveForOrder(
	ctx context.Context,
	repo repository.CustomerRepository,
	name, phone, email string,
	now time.Time,
) (*entity.Customer, error) {
	existing, err := repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente por teléfono: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	customer := newCustomer(name, phone, email, "", now)
	if err := repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return customer, nil
}

func newCustomer(name, phone, email, address string, now time.Time) *entity.Customer {
	return &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Address:   address,
		CreatedAt: now,
	}
}
