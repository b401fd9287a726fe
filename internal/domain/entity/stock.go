package entity

import "time"

// Stock representa el inventario actual de un producto en una bodega.
// Clave natural (ProductID, WarehouseID); a lo sumo un registro por par.
type Stock struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64 // nunca negativo
	UpdatedAt   time.Time
}
