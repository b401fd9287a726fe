package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

// InventoryHistoryRepository define el puerto del historial de inventario (append-only).
type InventoryHistoryRepository interface {
	Create(ctx context.Context, entry *entity.InventoryHistory) error
	// ListByProductAndWarehouse devuelve las entradas del par con from < Timestamp <= to,
	// ordenadas por Timestamp.
	ListByProductAndWarehouse(ctx context.Context, productID, warehouseID int64, from, to time.Time) ([]*entity.InventoryHistory, error)
}
