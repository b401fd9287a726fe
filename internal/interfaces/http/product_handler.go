package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
	"github.com/jhoicas/stock-alerts/internal/domain"
)

const (
	msgMissingFields    = "Missing one or more required fields in the request body."
	msgInvalidNumber    = "Invalid data type for price or initial_quantity. Please provide numbers."
	msgNegativeQuantity = "Initial quantity cannot be a negative value."
	msgPriceOutOfRange  = "Price must be between 0 and 9999999999.99."
	msgProductInternal  = "An internal server error occurred."
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto con inventario inicial
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.SimpleErrorResponse
// @Failure      403   {object}  dto.SimpleErrorResponse
// @Failure      404   {object}  dto.SimpleErrorResponse
// @Failure      409   {object}  dto.SimpleErrorResponse
// @Failure      500   {object}  dto.SimpleErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateProductRequest
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgInvalidNumber})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgMissingFields})
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return productError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func productError(c *fiber.Ctx, err error) error {
	var dup *usecase.DuplicateSKUError
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgMissingFields})
	case errors.Is(err, usecase.ErrInvalidNumber):
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgInvalidNumber})
	case errors.Is(err, usecase.ErrNegativeQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgNegativeQuantity})
	case errors.Is(err, usecase.ErrPriceOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.SimpleErrorResponse{Error: msgPriceOutOfRange})
	case errors.As(err, &dup):
		return c.Status(fiber.StatusConflict).JSON(dto.SimpleErrorResponse{Error: fmt.Sprintf("Product with SKU '%s' already exists.", dup.SKU)})
	case errors.Is(err, usecase.ErrSupplierNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.SimpleErrorResponse{Error: "Supplier not found."})
	case errors.Is(err, usecase.ErrProductTypeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.SimpleErrorResponse{Error: "Product type not found."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.SimpleErrorResponse{Error: "Warehouse not found."})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.SimpleErrorResponse{Error: "Warehouse belongs to another company."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SimpleErrorResponse{Error: msgProductInternal})
	}
}
