package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// customerService contrato que necesita el handler; lo implementa *usecase.CustomerUseCase.
type customerService interface {
	Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
}

// customerStats lo implementa *analytics.DashboardUseCase.
type customerStats interface {
	GetCustomerStats(ctx context.Context, customerID string) (*dto.CustomerStatsDTO, error)
}

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc    customerService
	stats customerStats
	log   *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc customerService, stats customerStats, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, stats: stats, log: log}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCustomerRequest  true  "name y phone obligatorios"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "cliente")
	}
	return c.JSON(out)
}

// Update PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Resumen de compras del cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerStatsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/stats [get]
func (h *CustomerHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.GetCustomerStats(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
