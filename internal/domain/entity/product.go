package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El SKU es único en todo el catálogo.
// SupplierID y ProductTypeID son referencias opcionales: nil = sin referencia.
type Product struct {
	ID            int64
	Name          string
	SKU           string
	Price         decimal.Decimal
	SupplierID    *int64
	ProductTypeID *int64
	CreatedAt     time.Time
}
