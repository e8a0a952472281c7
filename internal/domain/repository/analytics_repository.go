package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatsResult conteos y sumas crudas para las tarjetas del dashboard.
type OrderStatsResult struct {
	ActiveOrders    int             // status pending o in_progress
	CompletedOrders int             // status completed
	MonthlyRevenue  decimal.Decimal // SUM(paid_amount) desde el inicio del mes
	ActiveCustomers int             // clientes distintos con pedidos en la ventana
}

// MonthlyRevenueResult ingresos cobrados de un mes (clave YYYY-MM).
type MonthlyRevenueResult struct {
	Month   string
	Revenue decimal.Decimal
}

// StatusCountResult número de pedidos por estado.
type StatusCountResult struct {
	Status string
	Count  int
}

// FinanceTotalsResult totales de cobro sobre todos los pedidos.
type FinanceTotalsResult struct {
	TotalRevenue          decimal.Decimal // SUM(paid_amount)
	PendingPayments       decimal.Decimal // SUM(price - paid_amount) donde paid_amount < price
	AverageCompletedOrder decimal.Decimal // AVG(price) de los completados; 0 si no hay
}

// PaymentMethodResult pedidos e ingresos cobrados por forma de pago.
type PaymentMethodResult struct {
	Method  string
	Orders  int
	Revenue decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard.
// Las implementaciones son read-only y no modifican datos.
type AnalyticsRepository interface {
	// GetOrderStats cuenta activos/completados sobre todos los pedidos, suma lo cobrado
	// desde monthStart y cuenta clientes distintos con pedidos desde activeSince.
	GetOrderStats(ctx context.Context, monthStart, activeSince time.Time) (OrderStatsResult, error)

	// GetMonthlyRevenue agrupa SUM(paid_amount) por mes de creación desde since, en orden ascendente.
	// Los meses sin pedidos no aparecen.
	GetMonthlyRevenue(ctx context.Context, since time.Time) ([]MonthlyRevenueResult, error)

	// GetStatusDistribution cuenta pedidos por estado; solo aparecen estados con al menos un pedido.
	GetStatusDistribution(ctx context.Context) ([]StatusCountResult, error)

	// GetFinanceTotals devuelve cobrado, pendiente y ticket medio de completados.
	GetFinanceTotals(ctx context.Context) (FinanceTotalsResult, error)

	// GetRevenueByPaymentMethod agrupa pedidos e ingresos cobrados por forma de pago.
	GetRevenueByPaymentMethod(ctx context.Context) ([]PaymentMethodResult, error)
}
