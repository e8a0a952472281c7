package http

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// orderService contrato que necesita el handler; lo implementa *usecase.OrderUseCase.
type orderService interface {
	Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OrderResponse, error)
	List(ctx context.Context, q dto.OrderListQuery) ([]dto.OrderResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, id string) error
	UploadCompletionImage(ctx context.Context, id string, data []byte, declaredType string) (*dto.ImageUploadResponse, error)
	Receipt(ctx context.Context, id string) ([]byte, string, error)
	ExportCSV(ctx context.Context, q dto.OrderListQuery) ([]byte, error)
}

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	uc            orderService
	log           *logger.Logger
	maxImageBytes int64
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc orderService, log *logger.Logger, maxImageBytes int64) *OrderHandler {
	return &OrderHandler{uc: uc, log: log, maxImageBytes: maxImageBytes}
}

// List godoc
// @Summary      Listar pedidos
// @Description  Filtros combinables; "all" en status/paymentMethod equivale a sin filtro.
// @Tags         orders
// @Produce      json
// @Param        status         query  string  false  "pending | in_progress | completed | all"
// @Param        paymentMethod  query  string  false  "delivery | advance | full | all"
// @Param        customerId     query  string  false  "ID de cliente"
// @Param        search         query  string  false  "Texto en nombre de cliente o producto"
// @Param        startDate      query  string  false  "Creado desde (YYYY-MM-DD o ISO 8601)"
// @Param        endDate        query  string  false  "Creado hasta (inclusive)"
// @Param        deliveryFrom   query  string  false  "Entrega desde"
// @Param        deliveryTo     query  string  false  "Entrega hasta (inclusive)"
// @Success      200  {array}   dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	list, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Export godoc
// @Summary      Exportar pedidos a CSV
// @Tags         orders
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/orders/export [get]
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.ExportCSV(c.Context(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pedidos.csv"`)
	return c.Send(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "pedido")
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Create godoc
// @Summary      Crear pedido
// @Description  Resuelve el cliente por teléfono (lo crea si no existe). Status por defecto pending;
// @Description  paidAmount se deriva de la forma de pago si no se envía.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in, orderMoneyFields...); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar pedido (parcial)
// @Description  Solo se modifican los campos enviados. deliveryDate "" borra la fecha.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del pedido"
// @Param        body  body      dto.UpdateOrderRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := parseBody(c, &in, orderMoneyFields...); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  No elimina al cliente. Borrar un pedido inexistente también responde 204.
// @Tags         orders
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage godoc
// @Summary      Subir foto del producto terminado
// @Description  multipart/form-data con el campo "image". Se reduce a 800×600 máx.
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID del pedido"
// @Param        image  formData  file    true  "Imagen (jpeg, png, webp...)"
// @Success      200    {object}  dto.ImageUploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      413    {object}  dto.ErrorResponse
// @Failure      415    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/image [post]
func (h *OrderHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return writeError(c, h.log, domain.NewValidationError("image", "es obligatorio"))
	}
	if h.maxImageBytes > 0 && fh.Size > h.maxImageBytes {
		return writeError(c, h.log, domain.ErrImageTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, h.log, err)
	}

	out, err := h.uc.UploadCompletionImage(c.Context(), c.Params("id"), data, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
