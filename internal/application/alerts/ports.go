package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

// SnapshotReader entrega al motor una vista consistente e inmutable de los datos
// durante una sola ejecución (una transacción de solo lectura o una copia en memoria).
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(snap repository.Repositories) error) error
}

// Outcomes registrados por MetricsRecorder.
const (
	OutcomeOK            = "ok"
	OutcomeScopeNotFound = "scope_not_found"
	OutcomeError         = "error"
)

// MetricsRecorder registra el resultado de cada cálculo de alertas.
type MetricsRecorder interface {
	ObserveComputation(outcome string, alerts int, elapsed time.Duration)
}

// ReportGenerator renderiza un reporte de alertas (PDF u otro formato).
type ReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, companyID int64, generatedAt time.Time, alerts []dto.LowStockAlertDTO) ([]byte, error)
}

type noopMetrics struct{}

func (noopMetrics) ObserveComputation(string, int, time.Duration) {}
