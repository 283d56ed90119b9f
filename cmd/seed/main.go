// Comando seed: inicializa el almacén configurado con el catálogo de
// arranque del servicio de maintenance. No toca un almacén que ya tenga
// piezas, para poder ejecutarlo sin miedo en un puesto ya en uso.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
	"github.com/emicampus/gmao-stock/internal/infrastructure/postgres"
	"github.com/emicampus/gmao-stock/internal/infrastructure/sqlite"
	"github.com/emicampus/gmao-stock/internal/infrastructure/xlsx"
	"github.com/emicampus/gmao-stock/pkg/config"
	"github.com/emicampus/gmao-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()

	var store repository.LedgerStore
	switch cfg.Store.Driver {
	case config.DriverXLSX:
		store = xlsx.NewStore(cfg.Store.XLSXPath)
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir SQLite")
		}
		defer db.Close()
		store = db
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := postgres.NewStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		store = pg
	}

	existing, err := store.LoadStock(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("leer almacén")
	}
	if len(existing) > 0 {
		log.Info().Int("piezas", len(existing)).Msg("el almacén ya tiene stock, nada que hacer")
		return
	}

	now := time.Now()
	parts := []entity.Part{
		{ID: "PMP-01", Designation: "Circulateur Solaire Wilo", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), AlertThreshold: 1, UpdatedAt: now},
		{ID: "ANO-02", Designation: "Anode Magnésium", Quantity: 10, UnitPrice: decimal.NewFromInt(350), AlertThreshold: 3, UpdatedAt: now},
		{ID: "GLY-03", Designation: "Bidon Glycol 20L", Quantity: 5, UnitPrice: decimal.NewFromInt(800), AlertThreshold: 2, UpdatedAt: now},
		{ID: "SEL-04", Designation: "Sel Adoucisseur (sac 25kg)", Quantity: 20, UnitPrice: decimal.NewFromInt(95), AlertThreshold: 5, UpdatedAt: now},
		{ID: "SND-05", Designation: "Sonde PT1000", Quantity: 8, UnitPrice: decimal.NewFromInt(120), AlertThreshold: 2, UpdatedAt: now},
	}
	if err := store.ReplaceStock(ctx, parts); err != nil {
		log.Fatal().Err(err).Msg("escribir catálogo inicial")
	}
	log.Info().Int("piezas", len(parts)).Str("driver", cfg.Store.Driver).Msg("catálogo inicial escrito")
}
