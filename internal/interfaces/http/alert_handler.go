package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/domain"
)

const (
	msgCompanyNotFound = "Company not found or has no warehouses."
	msgInternalError   = "Internal server error"
)

// AlertHandler expone las alertas de bajo stock de una empresa.
type AlertHandler struct {
	uc *alerts.LowStockUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.LowStockUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Alertas de bajo stock
// @Tags         alerts
// @Produce      json
// @Param        companyId  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.LowStockAlertsResponse
// @Failure      500  {object}  dto.SimpleErrorResponse
// @Router       /api/companies/{companyId}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	companyID, err := parseCompanyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "companyId debe ser un entero"})
	}
	out, err := h.uc.GetLowStockAlerts(c.UserContext(), companyID)
	if err != nil {
		return alertError(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte PDF de alertas de bajo stock
// @Tags         alerts
// @Produce      application/pdf
// @Param        companyId  path  int  true  "ID de la empresa"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.LowStockAlertsResponse
// @Failure      500  {object}  dto.SimpleErrorResponse
// @Router       /api/companies/{companyId}/alerts/low-stock/report.pdf [get]
func (h *AlertHandler) LowStockReport(c *fiber.Ctx) error {
	companyID, err := parseCompanyID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "companyId debe ser un entero"})
	}
	doc, err := h.uc.GenerateLowStockReport(c.UserContext(), companyID)
	if err != nil {
		return alertError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="low-stock-%d.pdf"`, companyID))
	return c.Send(doc)
}

func parseCompanyID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("companyId"), 10, 64)
}

// alertError traduce los errores del caso de uso; el detalle interno ya quedó en el log.
func alertError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrCompanyNotFound) {
		resp := dto.NewLowStockAlertsResponse(nil)
		resp.Message = msgCompanyNotFound
		return c.Status(fiber.StatusNotFound).JSON(resp)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.SimpleErrorResponse{Error: msgInternalError})
}
