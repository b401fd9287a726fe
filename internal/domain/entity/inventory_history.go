package entity

import "time"

// InventoryHistory es una entrada del historial de inventario (append-only).
// Change negativo = consumo/venta, positivo = reposición.
type InventoryHistory struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Change      int64
	Timestamp   time.Time
}

// IsSale indica si la entrada representa una salida por venta/consumo.
func (h InventoryHistory) IsSale() bool {
	return h.Change < 0
}
