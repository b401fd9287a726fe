package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stock-alerts/internal/application/dto"
	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

// LowStockUseCase expone el cálculo de alertas de bajo stock a la capa HTTP:
// abre un snapshot, ejecuta el motor con el reloj inyectado, registra métricas y logs.
type LowStockUseCase struct {
	engine  *Engine
	reader  SnapshotReader
	reports ReportGenerator
	metrics MetricsRecorder
	log     *logger.Logger
	now     func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*LowStockUseCase)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *LowStockUseCase) { uc.now = now }
}

// WithMetrics registra cada cálculo en el recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(uc *LowStockUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithReportGenerator habilita GenerateLowStockReport.
func WithReportGenerator(g ReportGenerator) Option {
	return func(uc *LowStockUseCase) { uc.reports = g }
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(engine *Engine, reader SnapshotReader, log *logger.Logger, opts ...Option) *LowStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &LowStockUseCase{
		engine:  engine,
		reader:  reader,
		metrics: noopMetrics{},
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetLowStockAlerts calcula las alertas de la empresa.
// Errores: domain.ErrCompanyNotFound (sin bodegas) o domain.ErrInternal (cualquier otro fallo,
// ya registrado en el log). Nunca devuelve un resultado parcial junto con un error.
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID int64) (*dto.LowStockAlertsResponse, error) {
	alerts, _, err := uc.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewLowStockAlertsResponse(alerts)
	return &resp, nil
}

// GenerateLowStockReport calcula las alertas y las renderiza con el ReportGenerator.
func (uc *LowStockUseCase) GenerateLowStockReport(ctx context.Context, companyID int64) ([]byte, error) {
	if uc.reports == nil {
		uc.log.Error().Msg("generador de reportes no configurado")
		return nil, domain.ErrInternal
	}
	alerts, now, err := uc.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.reports.GenerateLowStockReport(ctx, companyID, now, alerts)
	if err != nil {
		uc.log.Error().Err(err).Int64("company_id", companyID).Msg("generar reporte de bajo stock")
		return nil, domain.ErrInternal
	}
	return doc, nil
}

func (uc *LowStockUseCase) compute(ctx context.Context, companyID int64) ([]dto.LowStockAlertDTO, time.Time, error) {
	start := time.Now()
	now := uc.now()
	log := uc.log.Child(uc.log.With().Int64("company_id", companyID))

	var alerts []dto.LowStockAlertDTO
	err := uc.reader.ReadSnapshot(ctx, func(snap repository.Repositories) error {
		var runErr error
		alerts, runErr = uc.safeCompute(ctx, companyID, snap, now)
		return runErr
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		uc.metrics.ObserveComputation(OutcomeOK, len(alerts), elapsed)
		log.Info().
			Int("alerts", len(alerts)).
			Dur("duration", elapsed).
			Msg("alertas de bajo stock calculadas")
		return alerts, now, nil
	case errors.Is(err, domain.ErrCompanyNotFound):
		uc.metrics.ObserveComputation(OutcomeScopeNotFound, 0, elapsed)
		log.Info().Msg("empresa sin bodegas")
		return nil, now, domain.ErrCompanyNotFound
	default:
		uc.metrics.ObserveComputation(OutcomeError, 0, elapsed)
		log.Error().Err(err).Msg("cálculo de alertas de bajo stock")
		return nil, now, domain.ErrInternal
	}
}

// safeCompute convierte un panic del motor (snapshot malformado) en error.
func (uc *LowStockUseCase) safeCompute(ctx context.Context, companyID int64, snap repository.Repositories, now time.Time) (alerts []dto.LowStockAlertDTO, err error) {
	defer func() {
		if r := recover(); r != nil {
			alerts = nil
			err = fmt.Errorf("panic en motor de alertas: %v", r)
		}
	}()
	return uc.engine.ComputeLowStockAlerts(ctx, companyID, snap, now)
}
