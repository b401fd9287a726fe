package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
	"github.com/jhoicas/stock-alerts/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stock-alerts/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/stock-alerts/internal/interfaces/http"
	"github.com/jhoicas/stock-alerts/pkg/config"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// dataStore es lo que necesita la API del almacenamiento: lecturas consistentes y escrituras atómicas.
type dataStore interface {
	alerts.SnapshotReader
	usecase.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.App.DataSource).
		Int("alert_window_days", cfg.Alerts.WindowDays).
		Int64("alert_default_threshold", cfg.Alerts.DefaultThreshold).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store dataStore
	switch cfg.App.DataSource {
	case config.DataSourceMemory:
		mem := memory.NewStore()
		if err := mem.Run(ctx, seed.Demo(time.Now()).Loader(ctx)); err != nil {
			log.Fatal().Err(err).Msg("cargar dataset de demostración")
		}
		log.Info().Msg("usando almacenamiento en memoria con dataset de demostración")
		store = mem
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		store = postgres.NewTxRunner(pool)
	}

	policy := inventory.AlertPolicy{
		WindowDays:       cfg.Alerts.WindowDays,
		DefaultThreshold: cfg.Alerts.DefaultThreshold,
	}
	opts := []alerts.Option{alerts.WithReportGenerator(infrapdf.NewMarotoReportGenerator())}
	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		opts = append(opts, alerts.WithMetrics(recorder))
	}
	alertsUC := alerts.NewLowStockUseCase(alerts.NewEngine(policy, log), store, log, opts...)
	productUC := usecase.NewProductUseCase(store, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Alerts API",
		}))
	}

	deps := httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		AlertsUC:    alertsUC,
		ProductUC:   productUC,
		JWTSecret:   cfg.JWT.Secret,
	}
	if recorder != nil {
		deps.MetricsHandler = recorder.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
