package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/migration"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pedidos-api/migrations"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// startPostgres levanta PostgreSQL en un contenedor y aplica las migraciones embebidas.
// Devuelve el DSN; el contenedor se elimina al terminar el test.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con PostgreSQL omitida en modo -short")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pedidos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "arrancar contenedor PostgreSQL")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	url, err := postgres.MigrationURL(config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	m, err := migration.New(migrations.FS, url, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	return dsn
}

func openPool(t *testing.T, dsn, timeZone string) *pgxpool.Pool {
	t.Helper()
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn, TimeZone: timeZone}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE orders, customers`)
	require.NoError(t, err)
}

func day(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "importe: esperado %s, obtenido %s", want, got)
}

type fixture struct {
	t         *testing.T
	customers *postgres.CustomerRepo
	orders    *postgres.OrderRepo
}

func (f fixture) customer(id, name, phone string, createdAt time.Time) {
	f.t.Helper()
	require.NoError(f.t, f.customers.Create(context.Background(), &entity.Customer{
		ID: id, Name: name, Phone: phone, CreatedAt: createdAt,
	}))
}

func (f fixture) order(id, customerID, product string, status entity.OrderStatus, method entity.PaymentMethod, price, paid string, createdAt time.Time) {
	f.t.Helper()
	require.NoError(f.t, f.orders.Create(context.Background(), &entity.Order{
		ID:            id,
		CustomerID:    customerID,
		Product:       product,
		Price:         money(price),
		Status:        status,
		PaymentMethod: method,
		AdvanceAmount: decimal.Zero,
		PaidAmount:    money(paid),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}))
}

func orderIDs(list []*entity.OrderWithCustomer) []string {
	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestRepositorios_PostgreSQL(t *testing.T) {
	dsn := startPostgres(t)
	pool := openPool(t, dsn, "UTC")
	ctx := context.Background()

	fx := fixture{
		t:         t,
		customers: postgres.NewCustomerRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
	}
	analytics := postgres.NewAnalyticsRepository(pool)

	t.Run("ingresos mensuales: corte de 6 meses, claves ascendentes y dispersas", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		since := day(2025, time.December, 15, 12)

		fx.customer("c1", "Ana", "600", day(2025, time.January, 1, 0))
		fx.order("antiguo", "c1", "Tarta", entity.OrderStatusCompleted, entity.PaymentFull, "99", "99", day(2025, time.November, 20, 10))
		fx.order("limite", "c1", "Tarta", entity.OrderStatusCompleted, entity.PaymentFull, "1", "1", since)
		fx.order("ene-1", "c1", "Tarta", entity.OrderStatusCompleted, entity.PaymentFull, "10", "10", day(2026, time.January, 10, 9))
		fx.order("ene-2", "c1", "Tarta", entity.OrderStatusPending, entity.PaymentAdvance, "20", "5", day(2026, time.January, 25, 9))
		fx.order("abr", "c1", "Tarta", entity.OrderStatusCompleted, entity.PaymentFull, "20", "20", day(2026, time.April, 2, 9))
		fx.order("jun", "c1", "Tarta", entity.OrderStatusPending, entity.PaymentAdvance, "15", "7.50", day(2026, time.June, 1, 9))

		rows, err := analytics.GetMonthlyRevenue(ctx, since)
		require.NoError(t, err)

		months := make([]string, 0, len(rows))
		for _, r := range rows {
			months = append(months, r.Month)
		}
		assert.Equal(t, []string{"2025-12", "2026-01", "2026-04", "2026-06"}, months)
		assertMoney(t, "1", rows[0].Revenue)
		assertMoney(t, "15", rows[1].Revenue)
		assertMoney(t, "20", rows[2].Revenue)
		assertMoney(t, "7.5", rows[3].Revenue)
	})

	t.Run("estadísticas, distribución y finanzas", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		monthStart := day(2026, time.June, 1, 0)
		activeSince := day(2026, time.March, 15, 12)

		fx.customer("c1", "Ana", "600", day(2025, time.January, 1, 0))
		fx.customer("c2", "Luis", "601", day(2025, time.January, 1, 0))
		fx.customer("c3", "Eva", "602", day(2025, time.January, 1, 0))
		fx.order("p1", "c1", "Tarta", entity.OrderStatusPending, entity.PaymentAdvance, "20", "10", monthStart)
		fx.order("p2", "c2", "Galletas", entity.OrderStatusInProgress, entity.PaymentDelivery, "10", "4", monthStart.Add(-time.Second))
		fx.order("p3", "c1", "Cupcakes", entity.OrderStatusCompleted, entity.PaymentFull, "30", "30", activeSince)
		fx.order("p4", "c3", "Bizcocho", entity.OrderStatusCompleted, entity.PaymentFull, "10", "12", day(2026, time.January, 1, 0))

		stats, err := analytics.GetOrderStats(ctx, monthStart, activeSince)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ActiveOrders)
		assert.Equal(t, 2, stats.CompletedOrders)
		assertMoney(t, "10", stats.MonthlyRevenue) // p2 cae un segundo antes del inicio de mes
		assert.Equal(t, 2, stats.ActiveCustomers) // c1 (dos pedidos) y c2; c3 queda fuera de la ventana

		dist, err := analytics.GetStatusDistribution(ctx)
		require.NoError(t, err)
		assert.Equal(t, []repository.StatusCountResult{
			{Status: "pending", Count: 1},
			{Status: "in_progress", Count: 1},
			{Status: "completed", Count: 2},
		}, dist)

		fin, err := analytics.GetFinanceTotals(ctx)
		require.NoError(t, err)
		assertMoney(t, "56", fin.TotalRevenue)
		assertMoney(t, "16", fin.PendingPayments) // p4 pagado de más no resta
		assertMoney(t, "20", fin.AverageCompletedOrder)

		byMethod, err := analytics.GetRevenueByPaymentMethod(ctx)
		require.NoError(t, err)
		require.Len(t, byMethod, 3)
		assert.Equal(t, "delivery", byMethod[0].Method)
		assert.Equal(t, 1, byMethod[0].Orders)
		assertMoney(t, "4", byMethod[0].Revenue)
		assert.Equal(t, "advance", byMethod[1].Method)
		assertMoney(t, "10", byMethod[1].Revenue)
		assert.Equal(t, "full", byMethod[2].Method)
		assert.Equal(t, 2, byMethod[2].Orders)
		assertMoney(t, "42", byMethod[2].Revenue)
	})

	t.Run("estadísticas sin pedidos", func(t *testing.T) {
		truncate(t, pool)
		stats, err := analytics.GetOrderStats(ctx, day(2026, time.June, 1, 0), day(2026, time.March, 1, 0))
		require.NoError(t, err)
		assert.Zero(t, stats.ActiveOrders)
		assertMoney(t, "0", stats.MonthlyRevenue)

		fin, err := analytics.GetFinanceTotals(ctx)
		require.NoError(t, err)
		assertMoney(t, "0", fin.AverageCompletedOrder)

		dist, err := analytics.GetStatusDistribution(ctx)
		require.NoError(t, err)
		assert.Empty(t, dist)
	})

	t.Run("listado: filtros, búsqueda y orden", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		fx.customer("garcia", "María García", "600111222", day(2025, time.January, 1, 0))
		fx.customer("lopez", "Pedro López", "600333444", day(2025, time.January, 1, 0))
		fx.order("o1", "garcia", "Tarta de cumpleaños", entity.OrderStatusCompleted, entity.PaymentFull, "25", "25", day(2026, time.May, 3, 10))
		fx.order("o2", "lopez", "Bizcocho", entity.OrderStatusInProgress, entity.PaymentDelivery, "12", "0", day(2026, time.May, 4, 10))
		fx.order("o3", "lopez", "Galletas 1000 uds", entity.OrderStatusCompleted, entity.PaymentFull, "40", "40", day(2026, time.May, 5, 10))
		fx.order("o4", "lopez", "Tarta 100% cacao", entity.OrderStatusPending, entity.PaymentAdvance, "30", "10", day(2026, time.May, 6, 10))

		all, err := fx.orders.List(ctx, repository.OrderFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"o4", "o3", "o2", "o1"}, orderIDs(all))

		completed, err := fx.orders.List(ctx, repository.OrderFilter{Status: entity.OrderStatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, []string{"o3", "o1"}, orderIDs(completed))

		byName, err := fx.orders.List(ctx, repository.OrderFilter{Search: "garcía"})
		require.NoError(t, err)
		require.Equal(t, []string{"o1"}, orderIDs(byName))
		assert.Equal(t, "María García", byName[0].Customer.Name)

		byProduct, err := fx.orders.List(ctx, repository.OrderFilter{Search: "TARTA"})
		require.NoError(t, err)
		assert.Equal(t, []string{"o4", "o1"}, orderIDs(byProduct))

		// % es literal: no debe casar con "1000"
		literal, err := fx.orders.List(ctx, repository.OrderFilter{Search: "100%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"o4"}, orderIDs(literal))

		start, end := day(2026, time.May, 4, 10), day(2026, time.May, 5, 10)
		window, err := fx.orders.List(ctx, repository.OrderFilter{
			CustomerID: "lopez",
			StartDate:  &start,
			EndDate:    &end,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"o3", "o2"}, orderIDs(window))

		none, err := fx.orders.List(ctx, repository.OrderFilter{PaymentMethod: entity.PaymentAdvance, CustomerID: "garcia"})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("FindByPhone devuelve el cliente más antiguo", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		fx.customer("nuevo", "Ana B", "600111222", day(2026, time.February, 1, 0))
		fx.customer("viejo", "Ana", "600111222", day(2026, time.January, 1, 0))
		fx.customer("otro", "Luis", "600 111 222", day(2025, time.January, 1, 0))

		c, err := fx.customers.FindByPhone(ctx, "600111222")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "viejo", c.ID)

		missing, err := fx.customers.FindByPhone(ctx, "699999999")
		require.NoError(t, err)
		assert.Nil(t, missing)

		list, err := fx.customers.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "nuevo", list[0].ID)

		err = fx.customers.Create(ctx, &entity.Customer{ID: "viejo", Name: "X", Phone: "1", CreatedAt: time.Now()})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("actualizar y borrar pedidos conserva al cliente", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		fx.customer("c1", "Ana", "600", day(2026, time.January, 1, 0))
		fx.order("o1", "c1", "Tarta", entity.OrderStatusPending, entity.PaymentAdvance, "30", "10", day(2026, time.May, 1, 10))

		paid := money("30")
		status := entity.OrderStatusCompleted
		updatedAt := day(2026, time.May, 2, 10)
		o, err := fx.orders.Update(ctx, "o1", repository.OrderPatch{PaidAmount: &paid, Status: &status}, updatedAt)
		require.NoError(t, err)
		assertMoney(t, "30", o.PaidAmount)
		assert.Equal(t, entity.OrderStatusCompleted, o.Status)
		assert.Equal(t, "Tarta", o.Product)
		assert.True(t, updatedAt.Equal(o.UpdatedAt))

		_, err = fx.orders.Update(ctx, "no-existe", repository.OrderPatch{Status: &status}, updatedAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = fx.orders.Create(ctx, &entity.Order{
			ID: "o2", CustomerID: "fantasma", Product: "Tarta",
			Status: entity.OrderStatusPending, PaymentMethod: entity.PaymentFull,
			CreatedAt: updatedAt, UpdatedAt: updatedAt,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		deleted, err := fx.orders.Delete(ctx, "o1")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = fx.orders.Delete(ctx, "o1")
		require.NoError(t, err)
		assert.False(t, deleted)

		gone, err := fx.orders.GetByID(ctx, "o1")
		require.NoError(t, err)
		assert.Nil(t, gone)

		c, err := fx.customers.GetByID(ctx, "c1")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Ana", c.Name)
	})

	// Un pedido a las 00:30 del 1 de marzo en Madrid es el 28 de febrero en UTC:
	// el mes que devuelve la consulta depende de la zona de la sesión.
	t.Run("zona horaria de la sesión", func(t *testing.T) {
		truncate(t, pool)
		fx.t = t
		fx.customer("c1", "Ana", "600", day(2026, time.January, 1, 0))
		fx.order("o1", "c1", "Tarta", entity.OrderStatusCompleted, entity.PaymentFull, "10", "10",
			time.Date(2026, time.February, 28, 23, 30, 0, 0, time.UTC))

		madridPool := openPool(t, dsn, "Europe/Madrid")
		var tz string
		require.NoError(t, madridPool.QueryRow(ctx, `SHOW timezone`).Scan(&tz))
		assert.Equal(t, "Europe/Madrid", tz)

		since := day(2026, time.February, 1, 0)
		madrid, err := postgres.NewAnalyticsRepository(madridPool).GetMonthlyRevenue(ctx, since)
		require.NoError(t, err)
		require.Len(t, madrid, 1)
		assert.Equal(t, "2026-03", madrid[0].Month)

		utc, err := analytics.GetMonthlyRevenue(ctx, since)
		require.NoError(t, err)
		require.Len(t, utc, 1)
		assert.Equal(t, "2026-02", utc[0].Month)
	})
}
