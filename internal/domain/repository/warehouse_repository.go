package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	// ListByCompany devuelve las bodegas de la empresa ordenadas por ID ascendente.
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Warehouse, error)
}
