// seed carga el dataset de demostración (empresa 1, bodegas 456 y 457) en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Aplica las migraciones, inserta el dataset en una sola transacción, ajusta las secuencias
// e imprime un token de desarrollo para la empresa 1 (POST /api/products).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/stock-alerts/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/seed"
	"github.com/jhoicas/stock-alerts/pkg/config"
	"github.com/jhoicas/stock-alerts/pkg/jwt"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	data := seed.Demo(time.Now())
	if err := postgres.NewTxRunner(pool).Run(ctx, data.Loader(ctx)); err != nil {
		log.Fatal().Err(err).Msg("cargar dataset")
	}
	if err := postgres.ResetSequences(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("ajustar secuencias")
	}

	log.Info().
		Int("warehouses", len(data.Warehouses)).
		Int("products", len(data.Products)).
		Int("history", len(data.History)).
		Msg("dataset de demostración cargado")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, no se genera token de desarrollo")
		return
	}
	companyID := data.Warehouses[0].CompanyID
	tok, err := jwt.Generate(cfg.JWT.Secret, "seed", companyID, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	log.Info().Int64("company_id", companyID).Str("token", tok).Msg("token de desarrollo")
}
