package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName    string
	AlertsUC       *alerts.LowStockUseCase
	ProductUC      *usecase.ProductUseCase
	JWTSecret      string
	MetricsHandler nethttp.Handler // nil = /metrics deshabilitado
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Alertas (público)
	alertHandler := NewAlertHandler(deps.AlertsUC)
	companies := api.Group("/companies")
	companies.Get("/:companyId/alerts/low-stock", alertHandler.LowStock)
	companies.Get("/:companyId/alerts/low-stock/report.pdf", alertHandler.LowStockReport)

	// Products (protegido: la bodega debe ser de la empresa del token)
	products := api.Group("/products", AuthMiddleware(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
}
