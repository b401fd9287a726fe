package usecase

import (
	"context"

	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad de trabajo atómica: si fn devuelve error
// no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
