package entity

// ProductType agrupa productos que comparten el umbral de bajo stock.
// LowStockThreshold nil = umbral no definido (aplica el de la política).
type ProductType struct {
	ID                int64
	Name              string
	LowStockThreshold *int64
}
