package dto

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	ActiveOrders    int    `json:"activeOrders"`    // pending + in_progress
	CompletedOrders int    `json:"completedOrders"` // completed
	MonthlyRevenue  string `json:"monthlyRevenue"`  // cobrado en pedidos creados este mes
	ActiveCustomers int    `json:"activeCustomers"` // con pedidos en los últimos 3 meses
}

// MonthlyRevenueDTO punto de la gráfica de ingresos (últimos 6 meses, sin meses vacíos).
type MonthlyRevenueDTO struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue string `json:"revenue"`
}

// StatusCountDTO porción de la gráfica de estados.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PaymentMethodStatsDTO pedidos e ingresos por forma de pago.
type PaymentMethodStatsDTO struct {
	Method  string `json:"method"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// FinanceSummaryDTO respuesta de GET /api/dashboard/finances.
type FinanceSummaryDTO struct {
	TotalRevenue          string                  `json:"totalRevenue"`
	PendingPayments       string                  `json:"pendingPayments"`
	AverageCompletedOrder string                  `json:"averageCompletedOrder"`
	ByPaymentMethod       []PaymentMethodStatsDTO `json:"byPaymentMethod"`
}
