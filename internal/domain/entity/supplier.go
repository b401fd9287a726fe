package entity

// Supplier proveedor de productos.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail string
}
