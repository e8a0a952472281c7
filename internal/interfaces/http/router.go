package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// DashboardService une las lecturas del dashboard y el resumen por cliente.
type DashboardService interface {
	dashboardService
	customerStats
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC       orderService
	CustomerUC    customerService
	DashboardUC   DashboardService
	Log           *logger.Logger
	MaxImageBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log, deps.MaxImageBytes)
	orders.Get("/", orderHandler.List)
	orders.Get("/export", orderHandler.Export)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/image", orderHandler.UploadImage)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.DashboardUC, deps.Log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", customerHandler.Update)
	customers.Get("/:id/stats", customerHandler.Stats)

	// Dashboard (solo lectura)
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/revenue", dashboardHandler.GetRevenue)
	dashboard.Get("/status-distribution", dashboardHandler.GetStatusDistribution)
	dashboard.Get("/finances", dashboardHandler.GetFinances)
}
