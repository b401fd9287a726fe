package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

// ProductTypeRepository define el puerto de persistencia para ProductType.
type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	GetByID(ctx context.Context, id int64) (*entity.ProductType, error)
}
