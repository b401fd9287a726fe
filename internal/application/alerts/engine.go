package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

// Engine calcula las alertas de bajo stock de una empresa sobre un snapshot.
// No escribe ni guarda estado: es seguro usarlo desde varias goroutines.
type Engine struct {
	policy inventory.AlertPolicy
	log    *logger.Logger
}

// NewEngine construye el motor con la política dada. log puede ser nil.
func NewEngine(policy inventory.AlertPolicy, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{policy: policy, log: log}
}

// ComputeLowStockAlerts recorre las bodegas de la empresa y devuelve una alerta por cada
// par (producto, bodega) con ventas recientes y stock <= umbral.
//
// Orden: bodega por ID ascendente, luego producto por ID ascendente.
// Devuelve domain.ErrCompanyNotFound si la empresa no tiene bodegas. Las referencias
// colgantes (producto, tipo, proveedor) se omiten o degradan sin fallar el cálculo.
func (e *Engine) ComputeLowStockAlerts(ctx context.Context, companyID int64, snap repository.Repositories, now time.Time) ([]dto.LowStockAlertDTO, error) {
	warehouses, err := snap.Warehouses.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas: %w", err)
	}
	warehouses = compactWarehouses(warehouses)
	if len(warehouses) == 0 {
		return nil, domain.ErrCompanyNotFound
	}

	from := e.policy.WindowStart(now)
	out := make([]dto.LowStockAlertDTO, 0)

	for _, wh := range warehouses {
		records, err := snap.Stock.ListByWarehouse(ctx, wh.ID)
		if err != nil {
			return nil, fmt.Errorf("listar stock de bodega %d: %w", wh.ID, err)
		}
		records = compactStock(records, wh.ID)

		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			alert, err := e.evaluate(ctx, snap, wh, rec, from, now)
			if err != nil {
				return nil, err
			}
			if alert != nil {
				out = append(out, *alert)
			}
		}
	}
	return out, nil
}

// evaluate aplica la regla a un registro de inventario; nil si no corresponde alerta.
func (e *Engine) evaluate(
	ctx context.Context,
	snap repository.Repositories,
	wh *entity.Warehouse,
	rec *entity.Stock,
	from, now time.Time,
) (*dto.LowStockAlertDTO, error) {
	product, err := snap.Products.GetByID(ctx, rec.ProductID)
	if err != nil {
		return nil, fmt.Errorf("obtener producto %d: %w", rec.ProductID, err)
	}
	if product == nil {
		e.log.Warn().
			Int64("product_id", rec.ProductID).
			Int64("warehouse_id", wh.ID).
			Msg("registro de inventario con producto inexistente, se omite")
		return nil, nil
	}

	history, err := snap.History.ListByProductAndWarehouse(ctx, product.ID, wh.ID, from, now)
	if err != nil {
		return nil, fmt.Errorf("historial producto %d bodega %d: %w", product.ID, wh.ID, err)
	}
	recentSales := e.policy.RecentSales(history, now)
	if recentSales == 0 {
		// sin demanda reciente no hay urgencia
		return nil, nil
	}

	var productType *entity.ProductType
	if product.ProductTypeID != nil {
		productType, err = snap.ProductTypes.GetByID(ctx, *product.ProductTypeID)
		if err != nil {
			return nil, fmt.Errorf("obtener tipo de producto %d: %w", *product.ProductTypeID, err)
		}
	}
	threshold := e.policy.ResolveThreshold(productType)

	if !inventory.IsLowStock(rec.Quantity, threshold) {
		return nil, nil
	}

	supplier, err := e.supplierSummary(ctx, snap, product)
	if err != nil {
		return nil, err
	}

	return &dto.LowStockAlertDTO{
		ProductID:         product.ID,
		ProductName:       product.Name,
		SKU:               product.SKU,
		WarehouseID:       wh.ID,
		WarehouseName:     wh.Name,
		CurrentStock:      rec.Quantity,
		Threshold:         threshold,
		DaysUntilStockout: e.policy.DaysUntilStockout(rec.Quantity, recentSales),
		Supplier:          supplier,
	}, nil
}

func (e *Engine) supplierSummary(ctx context.Context, snap repository.Repositories, product *entity.Product) (*dto.SupplierSummaryDTO, error) {
	if product.SupplierID == nil {
		return nil, nil
	}
	supplier, err := snap.Suppliers.GetByID(ctx, *product.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor %d: %w", *product.SupplierID, err)
	}
	if supplier == nil {
		e.log.Debug().
			Int64("product_id", product.ID).
			Int64("supplier_id", *product.SupplierID).
			Msg("proveedor no encontrado, alerta sin proveedor")
		return nil, nil
	}
	return &dto.SupplierSummaryDTO{
		ID:           *product.SupplierID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
	}, nil
}

// compactWarehouses descarta nil y ordena por ID para un recorrido determinista.
func compactWarehouses(in []*entity.Warehouse) []*entity.Warehouse {
	out := make([]*entity.Warehouse, 0, len(in))
	for _, w := range in {
		if w != nil {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// compactStock descarta nil y registros de otra bodega, y ordena por ProductID.
func compactStock(in []*entity.Stock, warehouseID int64) []*entity.Stock {
	out := make([]*entity.Stock, 0, len(in))
	for _, s := range in {
		if s != nil && s.WarehouseID == warehouseID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
