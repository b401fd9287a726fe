package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

// Errores de validación de CreateProduct; todos envuelven domain.ErrInvalidInput.
var (
	ErrMissingFields    = fmt.Errorf("%w: faltan campos requeridos", domain.ErrInvalidInput)
	ErrInvalidNumber    = fmt.Errorf("%w: price o initial_quantity no numérico", domain.ErrInvalidInput)
	ErrNegativeQuantity = fmt.Errorf("%w: cantidad inicial negativa", domain.ErrInvalidInput)
	ErrPriceOutOfRange  = fmt.Errorf("%w: precio fuera de rango", domain.ErrInvalidInput)

	// Referencias opcionales inexistentes; envuelven domain.ErrNotFound.
	ErrSupplierNotFound    = fmt.Errorf("%w: proveedor", domain.ErrNotFound)
	ErrProductTypeNotFound = fmt.Errorf("%w: tipo de producto", domain.ErrNotFound)
)

var (
	// MaxPrice es el mayor precio que admite la columna NUMERIC(12,2).
	MaxPrice    = decimal.RequireFromString("9999999999.99")
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
)

// DuplicateSKUError indica que ya existe un producto con el SKU (normalizado).
type DuplicateSKUError struct {
	SKU string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("producto con SKU %q ya existe", e.SKU)
}

// Is permite errors.Is(err, domain.ErrDuplicate).
func (e *DuplicateSKUError) Is(target error) bool {
	return target == domain.ErrDuplicate
}

// ProductUseCase crea productos junto con su inventario inicial en una sola transacción.
type ProductUseCase struct {
	tx  TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{tx: tx, log: log, now: time.Now}
}

// NormalizeSKU aplica NFKC y recorta espacios; la unicidad se evalúa sobre este valor.
func NormalizeSKU(sku string) string {
	return strings.TrimSpace(norm.NFKC.String(sku))
}

// Create valida la entrada y crea producto, stock inicial y entrada de historial.
// companyID es la empresa del token: la bodega destino debe pertenecerle (domain.ErrForbidden).
func (uc *ProductUseCase) Create(ctx context.Context, companyID int64, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	if !in.HasRequiredFields() {
		return nil, ErrMissingFields
	}
	price, err := parseDecimal(in.Price)
	if err != nil {
		return nil, ErrInvalidNumber
	}
	price = price.Round(2)
	if price.IsNegative() || price.GreaterThan(MaxPrice) {
		return nil, ErrPriceOutOfRange
	}
	qty, err := parseDecimal(in.InitialQuantity)
	if err != nil || !qty.IsInteger() || qty.GreaterThan(maxQuantity) {
		return nil, ErrInvalidNumber
	}
	if qty.IsNegative() {
		return nil, ErrNegativeQuantity
	}
	sku := NormalizeSKU(*in.SKU)
	name := strings.TrimSpace(*in.Name)
	if sku == "" || name == "" {
		return nil, ErrMissingFields
	}

	now := uc.now()
	product := &entity.Product{
		Name:          name,
		SKU:           sku,
		Price:         price,
		SupplierID:    in.SupplierID,
		ProductTypeID: in.ProductTypeID,
		CreatedAt:     now,
	}
	quantity := qty.IntPart()

	err = uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Products.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return &DuplicateSKUError{SKU: sku}
		}
		wh, err := repos.Warehouses.GetByID(ctx, *in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}
		if wh.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if in.SupplierID != nil {
			sp, err := repos.Suppliers.GetByID(ctx, *in.SupplierID)
			if err != nil {
				return err
			}
			if sp == nil {
				return ErrSupplierNotFound
			}
		}
		if in.ProductTypeID != nil {
			pt, err := repos.ProductTypes.GetByID(ctx, *in.ProductTypeID)
			if err != nil {
				return err
			}
			if pt == nil {
				return ErrProductTypeNotFound
			}
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return &DuplicateSKUError{SKU: sku}
			}
			return err
		}
		if err := repos.Stock.Upsert(ctx, &entity.Stock{
			ProductID:   product.ID,
			WarehouseID: wh.ID,
			Quantity:    quantity,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
		if quantity == 0 {
			return nil
		}
		return repos.History.Create(ctx, &entity.InventoryHistory{
			ProductID:   product.ID,
			WarehouseID: wh.ID,
			Change:      quantity,
			Timestamp:   now,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return nil, err
		}
		uc.log.Error().Err(err).Str("sku", sku).Int64("warehouse_id", *in.WarehouseID).Msg("crear producto")
		return nil, domain.ErrInternal
	}

	uc.log.Info().
		Int64("product_id", product.ID).
		Str("sku", sku).
		Int64("warehouse_id", *in.WarehouseID).
		Int64("initial_quantity", quantity).
		Msg("producto creado")
	return &dto.CreateProductResponse{Message: "Product created successfully.", ProductID: product.ID}, nil
}

// parseDecimal acepta un número JSON o un string con contenido numérico.
func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Decimal{}, err
		}
		s = strings.TrimSpace(str)
	}
	return decimal.NewFromString(s)
}
