package repository

// Repositories agrupa los puertos atados a una misma lectura consistente o transacción.
// Los GetByID devuelven (nil, nil) cuando el registro no existe.
type Repositories struct {
	Warehouses   WarehouseRepository
	Stock        StockRepository
	History      InventoryHistoryRepository
	Products     ProductRepository
	ProductTypes ProductTypeRepository
	Suppliers    SupplierRepository
}
