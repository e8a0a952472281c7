package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de pedidos.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetOrderStats tarjetas del dashboard en una sola pasada sobre orders.
// Los conteos de activos/completados cubren todos los pedidos; el ingreso solo los creados
// desde monthStart y los clientes activos los que tienen pedidos desde activeSince.
func (r *AnalyticsRepo) GetOrderStats(ctx context.Context, monthStart, activeSince time.Time) (repository.OrderStatsResult, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE status IN ('pending', 'in_progress'))              AS active_orders,
	    COUNT(*) FILTER (WHERE status = 'completed')                              AS completed_orders,
	    COALESCE(SUM(paid_amount) FILTER (WHERE created_at >= $1), 0)             AS monthly_revenue,
	    COUNT(DISTINCT customer_id) FILTER (WHERE created_at >= $2)               AS active_customers
	FROM orders`

	var res repository.OrderStatsResult
	err := r.pool.QueryRow(ctx, query, monthStart, activeSince).Scan(
		&res.ActiveOrders,
		&res.CompletedOrders,
		&res.MonthlyRevenue,
		&res.ActiveCustomers,
	)
	if err != nil {
		return repository.OrderStatsResult{}, wrapErr("analytics.GetOrderStats", err)
	}
	return res, nil
}

// GetMonthlyRevenue SUM(paid_amount) por mes de creación (YYYY-MM) desde since, ascendente.
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context, since time.Time) ([]repository.MonthlyRevenueResult, error) {
	const query = `
	SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
	       COALESCE(SUM(paid_amount), 0)                       AS revenue
	FROM orders
	WHERE created_at >= $1
	GROUP BY 1
	ORDER BY 1 ASC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, wrapErr("analytics.GetMonthlyRevenue", err)
	}
	defer rows.Close()

	results := []repository.MonthlyRevenueResult{}
	for rows.Next() {
		var row repository.MonthlyRevenueResult
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, wrapErr("analytics.GetMonthlyRevenue scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("analytics.GetMonthlyRevenue", err)
	}
	return results, nil
}

// GetStatusDistribution cuenta pedidos por estado en orden de ciclo de vida.
func (r *AnalyticsRepo) GetStatusDistribution(ctx context.Context) ([]repository.StatusCountResult, error) {
	const query = `
	SELECT status::TEXT, COUNT(*)
	FROM orders
	GROUP BY status
	ORDER BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("analytics.GetStatusDistribution", err)
	}
	defer rows.Close()

	results := []repository.StatusCountResult{}
	for rows.Next() {
		var row repository.StatusCountResult
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, wrapErr("analytics.GetStatusDistribution scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("analytics.GetStatusDistribution", err)
	}
	return results, nil
}

// GetFinanceTotals cobrado, pendiente de cobro y ticket medio de los completados.
func (r *AnalyticsRepo) GetFinanceTotals(ctx context.Context) (repository.FinanceTotalsResult, error) {
	const query = `
	SELECT
	    COALESCE(SUM(paid_amount), 0)                                               AS total_revenue,
	    COALESCE(SUM(price - paid_amount) FILTER (WHERE paid_amount < price), 0)    AS pending_payments,
	    COALESCE(ROUND(AVG(price) FILTER (WHERE status = 'completed'), 2), 0)       AS avg_completed
	FROM orders`

	var res repository.FinanceTotalsResult
	err := r.pool.QueryRow(ctx, query).Scan(&res.TotalRevenue, &res.PendingPayments, &res.AverageCompletedOrder)
	if err != nil {
		return repository.FinanceTotalsResult{}, wrapErr("analytics.GetFinanceTotals", err)
	}
	return res, nil
}

// GetRevenueByPaymentMethod pedidos e ingresos cobrados por forma de pago.
func (r *AnalyticsRepo) GetRevenueByPaymentMethod(ctx context.Context) ([]repository.PaymentMethodResult, error) {
	const query = `
	SELECT payment_method::TEXT, COUNT(*), COALESCE(SUM(paid_amount), 0)
	FROM orders
	GROUP BY payment_method
	ORDER BY payment_method`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("analytics.GetRevenueByPaymentMethod", err)
	}
	defer rows.Close()

	results := []repository.PaymentMethodResult{}
	for rows.Next() {
		var row repository.PaymentMethodResult
		if err := rows.Scan(&row.Method, &row.Orders, &row.Revenue); err != nil {
			return nil, wrapErr("analytics.GetRevenueByPaymentMethod scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("analytics.GetRevenueByPaymentMethod", err)
	}
	return results, nil
}
