package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// dashboardService lo implementa *analytics.DashboardUseCase.
type dashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	GetMonthlyRevenue(ctx context.Context) ([]dto.MonthlyRevenueDTO, error)
	GetStatusDistribution(ctx context.Context) ([]dto.StatusCountDTO, error)
	GetFinanceSummary(ctx context.Context) (*dto.FinanceSummaryDTO, error)
}

// DashboardHandler maneja los endpoints del Dashboard. Todos son de solo lectura y sin parámetros;
// las fechas se calculan en el servidor.
type DashboardHandler struct {
	uc  dashboardService
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc dashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetStats godoc
// @Summary      Tarjetas del dashboard
// @Description  Pedidos activos y completados, cobrado este mes y clientes activos (últimos 3 meses).
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetRevenue godoc
// @Summary      Ingresos por mes (últimos 6 meses)
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.MonthlyRevenueDTO
// @Router       /api/dashboard/revenue [get]
func (h *DashboardHandler) GetRevenue(c *fiber.Ctx) error {
	out, err := h.uc.GetMonthlyRevenue(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetStatusDistribution godoc
// @Summary      Pedidos por estado
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.StatusCountDTO
// @Router       /api/dashboard/status-distribution [get]
func (h *DashboardHandler) GetStatusDistribution(c *fiber.Ctx) error {
	out, err := h.uc.GetStatusDistribution(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetFinances godoc
// @Summary      Resumen financiero
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.FinanceSummaryDTO
// @Router       /api/dashboard/finances [get]
func (h *DashboardHandler) GetFinances(c *fiber.Ctx) error {
	out, err := h.uc.GetFinanceSummary(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
