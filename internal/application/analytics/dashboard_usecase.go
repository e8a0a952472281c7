// Package analytics contiene los casos de uso de lectura del dashboard:
// tarjetas de resumen, gráficas de ingresos y estados, finanzas y resumen por cliente.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/ports"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Claves de caché del dashboard; cached les añade la generación (":v<n>").
const (
	keyStats    = "dashboard:stats"
	keyRevenue  = "dashboard:revenue"
	keyStatus   = "dashboard:status"
	keyFinances = "dashboard:finances"
)

const (
	activeCustomerMonths = 3 // ventana de clientes activos
	revenueMonths        = 6 // ventana de la gráfica de ingresos
)

// DashboardUseCase genera las métricas del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las respuestas se guardan
// en caché; un fallo de caché se registra y se responde desde la base de datos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	orders        repository.OrderRepository
	customers     repository.CustomerRepository
	cache         ports.DashboardCache
	log           *logger.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	cache ports.DashboardCache,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		orders:        orders,
		customers:     customers,
		cache:         cache,
		log:           log,
		now:           time.Now,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats tarjetas del dashboard: activos, completados, cobrado en el mes y clientes activos.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	return cached(ctx, uc, keyStats, func() (*dto.DashboardStatsDTO, error) {
		now := uc.now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		activeSince := now.AddDate(0, -activeCustomerMonths, 0)

		res, err := uc.analyticsRepo.GetOrderStats(ctx, monthStart, activeSince)
		if err != nil {
			return nil, fmt.Errorf("dashboard: estadísticas: %w", err)
		}
		return &dto.DashboardStatsDTO{
			ActiveOrders:    res.ActiveOrders,
			CompletedOrders: res.CompletedOrders,
			MonthlyRevenue:  dto.Money(res.MonthlyRevenue),
			ActiveCustomers: res.ActiveCustomers,
		}, nil
	})
}

// GetMonthlyRevenue ingresos cobrados por mes de los últimos 6 meses, en orden ascendente.
// Los meses sin pedidos no aparecen.
func (uc *DashboardUseCase) GetMonthlyRevenue(ctx context.Context) ([]dto.MonthlyRevenueDTO, error) {
	return cached(ctx, uc, keyRevenue, func() ([]dto.MonthlyRevenueDTO, error) {
		since := uc.now().AddDate(0, -revenueMonths, 0)
		rows, err := uc.analyticsRepo.GetMonthlyRevenue(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("dashboard: ingresos mensuales: %w", err)
		}
		out := make([]dto.MonthlyRevenueDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.MonthlyRevenueDTO{Month: r.Month, Revenue: dto.Money(r.Revenue)})
		}
		return out, nil
	})
}

// GetStatusDistribution número de pedidos por estado (solo estados con pedidos).
func (uc *DashboardUseCase) GetStatusDistribution(ctx context.Context) ([]dto.StatusCountDTO, error) {
	return cached(ctx, uc, keyStatus, func() ([]dto.StatusCountDTO, error) {
		rows, err := uc.analyticsRepo.GetStatusDistribution(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: distribución de estados: %w", err)
		}
		out := make([]dto.StatusCountDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.StatusCountDTO{Status: r.Status, Count: r.Count})
		}
		return out, nil
	})
}

// GetFinanceSummary totales de cobro y desglose por forma de pago.
//
// Dos consultas en paralelo:
//  1. GetFinanceTotals          → cobrado, pendiente, ticket medio
//  2. GetRevenueByPaymentMethod → desglose por forma de pago
func (uc *DashboardUseCase) GetFinanceSummary(ctx context.Context) (*dto.FinanceSummaryDTO, error) {
	return cached(ctx, uc, keyFinances, func() (*dto.FinanceSummaryDTO, error) {
		type totalsResult struct {
			totals repository.FinanceTotalsResult
			err    error
		}
		type methodsResult struct {
			rows []repository.PaymentMethodResult
			err  error
		}

		totalsCh := make(chan totalsResult, 1)
		methodsCh := make(chan methodsResult, 1)

		go func() {
			t, err := uc.analyticsRepo.GetFinanceTotals(ctx)
			totalsCh <- totalsResult{t, err}
		}()
		go func() {
			rows, err := uc.analyticsRepo.GetRevenueByPaymentMethod(ctx)
			methodsCh <- methodsResult{rows, err}
		}()

		totals := <-totalsCh
		methods := <-methodsCh

		if totals.err != nil {
			return nil, fmt.Errorf("dashboard: totales financieros: %w", totals.err)
		}
		if methods.err != nil {
			return nil, fmt.Errorf("dashboard: ingresos por forma de pago: %w", methods.err)
		}

		byMethod := make([]dto.PaymentMethodStatsDTO, 0, len(methods.rows))
		for _, r := range methods.rows {
			byMethod = append(byMethod, dto.PaymentMethodStatsDTO{
				Method:  r.Method,
				Orders:  r.Orders,
				Revenue: dto.Money(r.Revenue),
			})
		}
		return &dto.FinanceSummaryDTO{
			TotalRevenue:          dto.Money(totals.totals.TotalRevenue),
			PendingPayments:       dto.Money(totals.totals.PendingPayments),
			AverageCompletedOrder: dto.Money(totals.totals.AverageCompletedOrder),
			ByPaymentMethod:       byMethod,
		}, nil
	})
}

// GetCustomerStats resumen de compras de un cliente: nº de pedidos, suma de precios
// y fecha del último pedido (nil si no tiene). domain.ErrNotFound si el cliente no existe.
func (uc *DashboardUseCase) GetCustomerStats(ctx context.Context, customerID string) (*dto.CustomerStatsDTO, error) {
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	orders, err := uc.orders.List(ctx, repository.OrderFilter{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("estadísticas de cliente: %w", err)
	}

	spent := decimal.Zero
	var last *time.Time
	for _, o := range orders {
		spent = spent.Add(o.Price)
		if last == nil || o.CreatedAt.After(*last) {
			t := o.CreatedAt
			last = &t
		}
	}
	return &dto.CustomerStatsDTO{
		CustomerID:    customerID,
		TotalOrders:   len(orders),
		TotalSpent:    dto.Money(spent),
		LastOrderDate: last,
	}, nil
}

// cached lee key de la caché o la calcula con load y la guarda. La clave incluye la
// generación leída antes de cargar: si un cambio invalida durante la carga, el resultado
// queda en la generación anterior y la siguiente lectura vuelve a la base de datos.
func cached[T any](ctx context.Context, uc *DashboardUseCase, key string, load func() (T, error)) (T, error) {
	version, err := uc.cache.Version(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("leer versión de la caché del dashboard")
		return load()
	}
	key = fmt.Sprintf("%s:v%d", key, version)

	var hit T
	ok, err := uc.cache.Get(ctx, key, &hit)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("leer caché del dashboard")
	} else if ok {
		return hit, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if err := uc.cache.Set(ctx, key, v); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("guardar caché del dashboard")
	}
	return v, nil
}
