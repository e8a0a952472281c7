package usecase_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/application/validation"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

type orderEnv struct {
	uc      *usecase.OrderUseCase
	store   *store
	storage *fakeStorage
	cache   *fakeCache
	clock   *time.Time
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()
	s := &store{}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	env := &orderEnv{store: s, storage: &fakeStorage{}, cache: &fakeCache{}, clock: &now}
	env.uc = usecase.NewOrderUseCase(
		fakeTx{s}, memOrders{s}, memCustomers{s},
		env.storage, fakeReceipts{}, env.cache,
		validation.New(), usecase.ImageLimits{MaxBytes: 1 << 20}, logger.Nop(),
	).WithClock(func() time.Time {
		// cada llamada avanza un minuto para que created_at sea estrictamente creciente
		*env.clock = env.clock.Add(time.Minute)
		return *env.clock
	})
	return env
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func anaOrder() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:  "Ana",
		CustomerPhone: "600111222",
		Product:       "Agenda",
		Price:         money("20.00"),
		PaymentMethod: "advance",
		AdvanceAmount: money("5.00"),
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOrderUseCase_Create_Anticipo(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	first, err := env.uc.Create(ctx, anaOrder())
	require.NoError(t, err)
	assert.Equal(t, "5.00", first.PaidAmount)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, "15.00", first.Outstanding)
	assert.Equal(t, "partial", first.PaymentStatus)
	assert.Equal(t, "Ana", first.Customer.Name)

	in := anaOrder()
	in.CustomerName = "Ana María"
	in.Product = "Taza"
	second, err := env.uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.Equal(t, "Ana", second.Customer.Name)
	assert.Len(t, env.store.customers, 1)
	assert.Equal(t, 2, env.cache.invalidations)
}

func TestOrderUseCase_Create_PagoCompleto(t *testing.T) {
	env := newOrderEnv(t)
	in := anaOrder()
	in.PaymentMethod = "full"
	in.AdvanceAmount = nil

	out, err := env.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "20.00", out.PaidAmount)
	assert.Equal(t, "paid", out.PaymentStatus)
	assert.Equal(t, "0.00", out.Outstanding)
}

func TestOrderUseCase_Create_ContraEntregaYPagadoExplicito(t *testing.T) {
	env := newOrderEnv(t)
	in := anaOrder()
	in.PaymentMethod = "delivery"
	in.AdvanceAmount = nil
	out, err := env.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "0.00", out.PaidAmount)

	in.PaidAmount = money("25.00")
	out, err = env.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "25.00", out.PaidAmount, "paidAmount no se limita al precio")
	assert.Equal(t, "0.00", out.Outstanding)
}

func TestOrderUseCase_Create_Invalido(t *testing.T) {
	env := newOrderEnv(t)
	_, err := env.uc.Create(context.Background(), dto.CreateOrderRequest{CustomerName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.store.orders)
	assert.Empty(t, env.store.customers)
}

func TestOrderUseCase_List(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	a, err := env.uc.Create(ctx, anaOrder())
	require.NoError(t, err)
	b := anaOrder()
	b.CustomerName, b.CustomerPhone, b.Product = "José García", "611000000", "Cuaderno"
	_, err = env.uc.Create(ctx, b)
	require.NoError(t, err)
	c := anaOrder()
	c.Product, c.Status = "Libreta", "completed"
	_, err = env.uc.Create(ctx, c)
	require.NoError(t, err)

	t.Run("todos, más recientes primero", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{Status: "all"})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Libreta", list[0].Product)
		assert.Equal(t, "Agenda", list[2].Product)
	})

	t.Run("por estado", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{Status: "pending"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Cuaderno", list[0].Product)
		assert.Equal(t, "Agenda", list[1].Product)
	})

	t.Run("búsqueda sin mayúsculas", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{Search: "GARCÍA"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Cuaderno", list[0].Product)
	})

	t.Run("por cliente", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{CustomerID: a.CustomerID})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("sin resultados devuelve lista vacía", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{PaymentMethod: "full"})
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("rango de creación por días", func(t *testing.T) {
		list, err := env.uc.List(ctx, dto.OrderListQuery{StartDate: "2026-03-10", EndDate: "2026-03-10"})
		require.NoError(t, err)
		assert.Len(t, list, 3)

		list, err = env.uc.List(ctx, dto.OrderListQuery{StartDate: "2026-03-11"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("estado desconocido", func(t *testing.T) {
		_, err := env.uc.List(ctx, dto.OrderListQuery{Status: "cancelled"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestOrderUseCase_Update(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	in := anaOrder()
	in.DeliveryDate = "2026-04-01"
	created, err := env.uc.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.DeliveryDate)

	status := "completed"
	out, err := env.uc.Update(ctx, created.ID, dto.UpdateOrderRequest{Status: &status, PaidAmount: money("20.00")})
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, "paid", out.PaymentStatus)
	assert.Equal(t, "Agenda", out.Product)
	assert.True(t, out.UpdatedAt.After(created.UpdatedAt))

	// volver atrás también está permitido
	back := "pending"
	out, err = env.uc.Update(ctx, created.ID, dto.UpdateOrderRequest{Status: &back, DeliveryDate: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.Nil(t, out.DeliveryDate)

	_, err = env.uc.Update(ctx, "no-existe", dto.UpdateOrderRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bad := "shipped"
	_, err = env.uc.Update(ctx, created.ID, dto.UpdateOrderRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderUseCase_Delete(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	created, err := env.uc.Create(ctx, anaOrder())
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(ctx, created.ID))
	got, err := env.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, env.store.customers, 1, "el cliente no se borra")

	list, err := env.uc.List(ctx, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, env.uc.Delete(ctx, created.ID), "borrar de nuevo no es error")
}

func TestOrderUseCase_SetCompletionImage(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	created, err := env.uc.Create(ctx, anaOrder())
	require.NoError(t, err)

	out, err := env.uc.SetCompletionImage(ctx, created.ID, "https://cdn.test/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/a.jpg", out.ProductImage)
	assert.Equal(t, "pending", out.Status)
}

func TestOrderUseCase_UploadCompletionImage(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		env := newOrderEnv(t)
		created, err := env.uc.Create(ctx, anaOrder())
		require.NoError(t, err)

		out, err := env.uc.UploadCompletionImage(ctx, created.ID, pngBytes(t, 10, 10), "image/png")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.ImageURL, "https://cdn.test/pedidos/"+created.ID+"/"))
		assert.Equal(t, out.ImageURL, out.Order.ProductImage)
		assert.Equal(t, 1, env.storage.calls)
	})

	t.Run("demasiado grande", func(t *testing.T) {
		env := newOrderEnv(t)
		big := make([]byte, (1<<20)+1)
		_, err := env.uc.UploadCompletionImage(ctx, "x", big, "image/png")
		assert.ErrorIs(t, err, domain.ErrImageTooLarge)
		assert.Zero(t, env.storage.calls)
	})

	t.Run("no es imagen", func(t *testing.T) {
		env := newOrderEnv(t)
		_, err := env.uc.UploadCompletionImage(ctx, "x", []byte("hola, esto es texto"), "")
		assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)

		_, err = env.uc.UploadCompletionImage(ctx, "x", pngBytes(t, 2, 2), "application/pdf")
		assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
		assert.Zero(t, env.storage.calls)
	})

	t.Run("pedido inexistente", func(t *testing.T) {
		env := newOrderEnv(t)
		_, err := env.uc.UploadCompletionImage(ctx, "no-existe", pngBytes(t, 2, 2), "image/png")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, env.storage.calls)
	})

	t.Run("fallo del almacenamiento", func(t *testing.T) {
		env := newOrderEnv(t)
		env.storage.err = errBoom
		created, err := env.uc.Create(ctx, anaOrder())
		require.NoError(t, err)

		_, err = env.uc.UploadCompletionImage(ctx, created.ID, pngBytes(t, 2, 2), "image/png")
		assert.ErrorIs(t, err, domain.ErrUpstream)
		got, err := env.uc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ProductImage)
	})
}

func TestOrderUseCase_ReceiptAndExport(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	created, err := env.uc.Create(ctx, anaOrder())
	require.NoError(t, err)

	pdf, name, err := env.uc.Receipt(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Equal(t, "pedido-"+created.ID[:8]+".pdf", name)

	_, _, err = env.uc.Receipt(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	csv, err := env.uc.ExportCSV(ctx, dto.OrderListQuery{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,created_at,customer_name"))
	assert.Contains(t, lines[1], "Ana")
	assert.Contains(t, lines[1], "20.00")
}

func TestOrderUseCase_FalloDeCacheNoBloquea(t *testing.T) {
	env := newOrderEnv(t)
	env.cache.err = errBoom
	_, err := env.uc.Create(context.Background(), anaOrder())
	assert.NoError(t, err)
}
