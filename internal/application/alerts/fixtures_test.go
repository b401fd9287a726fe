package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/memory"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func ptr(v int64) *int64 { return &v }

// fixture acumula entidades y las vuelca en un memory.Store.
type fixture struct {
	suppliers    []entity.Supplier
	productTypes []entity.ProductType
	warehouses   []entity.Warehouse
	products     []entity.Product
	stock        []entity.Stock
	history      []entity.InventoryHistory
}

func (f *fixture) supplier(id int64, name, email string) *fixture {
	f.suppliers = append(f.suppliers, entity.Supplier{ID: id, Name: name, ContactEmail: email})
	return f
}

func (f *fixture) productType(id int64, threshold *int64) *fixture {
	f.productTypes = append(f.productTypes, entity.ProductType{ID: id, Name: "tipo", LowStockThreshold: threshold})
	return f
}

func (f *fixture) warehouse(id, companyID int64, name string) *fixture {
	f.warehouses = append(f.warehouses, entity.Warehouse{ID: id, CompanyID: companyID, Name: name})
	return f
}

func (f *fixture) product(id int64, name, sku string, supplierID, typeID *int64) *fixture {
	f.products = append(f.products, entity.Product{
		ID: id, Name: name, SKU: sku, Price: decimal.NewFromInt(1),
		SupplierID: supplierID, ProductTypeID: typeID,
	})
	return f
}

func (f *fixture) stockOf(productID, warehouseID, qty int64) *fixture {
	f.stock = append(f.stock, entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
	return f
}

func (f *fixture) move(productID, warehouseID, change int64, ago time.Duration) *fixture {
	f.history = append(f.history, entity.InventoryHistory{
		ProductID: productID, WarehouseID: warehouseID, Change: change, Timestamp: testNow.Add(-ago),
	})
	return f
}

func (f *fixture) store(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	err := s.Run(ctx, func(r repository.Repositories) error {
		for i := range f.suppliers {
			if err := r.Suppliers.Create(ctx, &f.suppliers[i]); err != nil {
				return err
			}
		}
		for i := range f.productTypes {
			if err := r.ProductTypes.Create(ctx, &f.productTypes[i]); err != nil {
				return err
			}
		}
		for i := range f.warehouses {
			if err := r.Warehouses.Create(ctx, &f.warehouses[i]); err != nil {
				return err
			}
		}
		for i := range f.products {
			if err := r.Products.Create(ctx, &f.products[i]); err != nil {
				return err
			}
		}
		for i := range f.stock {
			if err := r.Stock.Upsert(ctx, &f.stock[i]); err != nil {
				return err
			}
		}
		for i := range f.history {
			if err := r.History.Create(ctx, &f.history[i]); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return s
}
