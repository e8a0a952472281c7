package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// store almacén en memoria compartido por los repositorios falsos.
type store struct {
	mu        sync.Mutex
	customers []*entity.Customer
	orders    []*entity.Order
}

type memCustomers struct{ s *store }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers = append(r.s.customers, &cp)
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCustomers) FindByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCustomers) List(_ context.Context) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for i := len(r.s.customers) - 1; i >= 0; i-- {
		cp := *r.s.customers[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r memCustomers) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.customers {
		if existing.ID == c.ID {
			cp := *c
			r.s.customers[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

type memOrders struct{ s *store }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	r.s.orders = append(r.s.orders, &cp)
	return nil
}

func (r memOrders) join(o *entity.Order) *entity.OrderWithCustomer {
	out := &entity.OrderWithCustomer{Order: *o}
	for _, c := range r.s.customers {
		if c.ID == o.CustomerID {
			out.Customer = *c
		}
	}
	return out
}

func (r memOrders) GetByID(_ context.Context, id string) (*entity.OrderWithCustomer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			return r.join(o), nil
		}
	}
	return nil, nil
}

func (r memOrders) List(_ context.Context, f repository.OrderFilter) ([]*entity.OrderWithCustomer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.OrderWithCustomer{}
	for _, o := range r.s.orders {
		j := r.join(o)
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r memOrders) Update(_ context.Context, id string, p repository.OrderPatch, at time.Time) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			p.Apply(o)
			o.UpdatedAt = at
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memOrders) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, o := range r.s.orders {
		if o.ID == id {
			r.s.orders = append(r.s.orders[:i], r.s.orders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeTx ejecuta fn sobre los repositorios en memoria; no hay rollback real.
type fakeTx struct{ s *store }

func (t fakeTx) RunOrders(_ context.Context, fn func(repository.CustomerRepository, repository.OrderRepository) error) error {
	return fn(memCustomers{t.s}, memOrders{t.s})
}

type fakeStorage struct {
	calls int
	keys  []string
	err   error
}

func (f *fakeStorage) UploadImage(_ context.Context, key string, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.test/pedidos/" + key, nil
}

type fakeReceipts struct{}

func (fakeReceipts) GenerateOrderReceipt(_ context.Context, o *entity.OrderWithCustomer) ([]byte, error) {
	return []byte("%PDF-" + o.ID), nil
}

type fakeCache struct {
	invalidations int
	err           error
}

func (c *fakeCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *fakeCache) Set(context.Context, string, any) error         { return nil }
func (c *fakeCache) Version(context.Context) (int64, error)         { return 0, nil }
func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidations++
	return c.err
}

var errBoom = errors.New("boom")
