package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

var _ repository.InventoryHistoryRepository = (*InventoryHistoryRepo)(nil)

// InventoryHistoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryHistoryRepo struct {
	q Querier
}

// NewInventoryHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryHistoryRepository(q Querier) *InventoryHistoryRepo {
	return &InventoryHistoryRepo{q: q}
}

// Create agrega una entrada al historial.
func (r *InventoryHistoryRepo) Create(ctx context.Context, entry *entity.InventoryHistory) error {
	query := `
		INSERT INTO inventory_history (product_id, warehouse_id, change, occurred_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		RETURNING id, occurred_at`
	err := r.q.QueryRow(ctx, query,
		entry.ProductID, entry.WarehouseID, entry.Change, nullTime(entry.Timestamp),
	).Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("create inventory history: %w", err)
	}
	return nil
}

// ListByProductAndWarehouse lista las entradas del par con from < occurred_at <= to.
func (r *InventoryHistoryRepo) ListByProductAndWarehouse(ctx context.Context, productID, warehouseID int64, from, to time.Time) ([]*entity.InventoryHistory, error) {
	query := `
		SELECT id, product_id, warehouse_id, change, occurred_at
		FROM inventory_history
		WHERE product_id = $1 AND warehouse_id = $2 AND occurred_at > $3 AND occurred_at <= $4
		ORDER BY occurred_at, id`
	rows, err := r.q.Query(ctx, query, productID, warehouseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list inventory history: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryHistory
	for rows.Next() {
		var h entity.InventoryHistory
		if err := rows.Scan(&h.ID, &h.ProductID, &h.WarehouseID, &h.Change, &h.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// nullTime convierte el time.Time cero en NULL para que aplique el DEFAULT/now().
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
