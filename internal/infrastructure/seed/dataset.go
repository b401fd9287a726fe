// Package seed contiene el dataset de demostración y su carga a través de los repositorios,
// válido tanto para el store en memoria como para PostgreSQL.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

// Dataset conjunto de entidades a cargar.
type Dataset struct {
	Suppliers    []entity.Supplier
	ProductTypes []entity.ProductType
	Warehouses   []entity.Warehouse
	Products     []entity.Product
	Stock        []entity.Stock
	History      []entity.InventoryHistory
}

// Demo devuelve el dataset de demostración con timestamps relativos a now:
// una empresa (1) con dos bodegas, dos productos y tres movimientos de venta.
func Demo(now time.Time) Dataset {
	id := func(v int64) *int64 { return &v }
	day := 24 * time.Hour
	return Dataset{
		Suppliers: []entity.Supplier{
			{ID: 789, Name: "Supplier Corp", ContactEmail: "orders@supplier.com"},
			{ID: 790, Name: "Tech Supply Inc.", ContactEmail: "contact@tech.com"},
		},
		ProductTypes: []entity.ProductType{
			{ID: 1, Name: "Widgets", LowStockThreshold: id(20)},
			{ID: 2, Name: "Gadgets", LowStockThreshold: id(10)},
		},
		Warehouses: []entity.Warehouse{
			{ID: 456, CompanyID: 1, Name: "Main Warehouse", CreatedAt: now},
			{ID: 457, CompanyID: 1, Name: "West Warehouse", CreatedAt: now},
		},
		Products: []entity.Product{
			{ID: 123, Name: "Widget A", SKU: "WID-001", Price: decimal.RequireFromString("12.50"), SupplierID: id(789), ProductTypeID: id(1), CreatedAt: now},
			{ID: 124, Name: "Gadget B", SKU: "GAD-002", Price: decimal.RequireFromString("40.00"), SupplierID: id(790), ProductTypeID: id(2), CreatedAt: now},
		},
		Stock: []entity.Stock{
			{ProductID: 123, WarehouseID: 456, Quantity: 5, UpdatedAt: now},
			{ProductID: 124, WarehouseID: 456, Quantity: 15, UpdatedAt: now},
			{ProductID: 123, WarehouseID: 457, Quantity: 25, UpdatedAt: now},
		},
		History: []entity.InventoryHistory{
			{ProductID: 123, WarehouseID: 456, Change: -5, Timestamp: now.Add(-10 * day)},
			{ProductID: 124, WarehouseID: 456, Change: -2, Timestamp: now.Add(-2 * day)},
			{ProductID: 123, WarehouseID: 457, Change: -1, Timestamp: now.Add(-60 * day)},
		},
	}
}

// Loader adapta Apply a la firma de Run de los stores (TxRunner, memory.Store).
func (d Dataset) Loader(ctx context.Context) func(repos repository.Repositories) error {
	return func(repos repository.Repositories) error {
		return d.Apply(ctx, repos)
	}
}

// Apply inserta el dataset usando los repositorios dados (idealmente dentro de una transacción).
func (d Dataset) Apply(ctx context.Context, repos repository.Repositories) error {
	for i := range d.Suppliers {
		if err := repos.Suppliers.Create(ctx, &d.Suppliers[i]); err != nil {
			return fmt.Errorf("seed proveedor %d: %w", d.Suppliers[i].ID, err)
		}
	}
	for i := range d.ProductTypes {
		if err := repos.ProductTypes.Create(ctx, &d.ProductTypes[i]); err != nil {
			return fmt.Errorf("seed tipo de producto %d: %w", d.ProductTypes[i].ID, err)
		}
	}
	for i := range d.Warehouses {
		if err := repos.Warehouses.Create(ctx, &d.Warehouses[i]); err != nil {
			return fmt.Errorf("seed bodega %d: %w", d.Warehouses[i].ID, err)
		}
	}
	for i := range d.Products {
		if err := repos.Products.Create(ctx, &d.Products[i]); err != nil {
			return fmt.Errorf("seed producto %d: %w", d.Products[i].ID, err)
		}
	}
	for i := range d.Stock {
		if err := repos.Stock.Upsert(ctx, &d.Stock[i]); err != nil {
			return fmt.Errorf("seed stock %d/%d: %w", d.Stock[i].ProductID, d.Stock[i].WarehouseID, err)
		}
	}
	for i := range d.History {
		if err := repos.History.Create(ctx, &d.History[i]); err != nil {
			return fmt.Errorf("seed historial: %w", err)
		}
	}
	return nil
}
