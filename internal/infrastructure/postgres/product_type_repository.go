package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación de ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create persiste un tipo de producto; low_stock_threshold NULL = sin umbral propio.
func (r *ProductTypeRepo) Create(ctx context.Context, pt *entity.ProductType) error {
	query := `
		INSERT INTO product_types (id, name, low_stock_threshold)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval(pg_get_serial_sequence('product_types', 'id'))), $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, pt.ID, pt.Name, pt.LowStockThreshold).Scan(&pt.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de producto por ID.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id int64) (*entity.ProductType, error) {
	var pt entity.ProductType
	err := r.q.QueryRow(ctx, `SELECT id, name, low_stock_threshold FROM product_types WHERE id = $1`, id).
		Scan(&pt.ID, &pt.Name, &pt.LowStockThreshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &pt, nil
}
