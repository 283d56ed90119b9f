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

	"github.com/emicampus/gmao-stock/internal/application/auth"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/receiving"
	"github.com/emicampus/gmao-stock/internal/application/report"
	"github.com/emicampus/gmao-stock/internal/application/scan"
	"github.com/emicampus/gmao-stock/internal/domain"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
	"github.com/emicampus/gmao-stock/internal/infrastructure/memory"
	infrapdf "github.com/emicampus/gmao-stock/internal/infrastructure/pdf"
	"github.com/emicampus/gmao-stock/internal/infrastructure/postgres"
	"github.com/emicampus/gmao-stock/internal/infrastructure/sqlite"
	"github.com/emicampus/gmao-stock/internal/infrastructure/xlsx"
	httpRouter "github.com/emicampus/gmao-stock/internal/interfaces/http"
	"github.com/emicampus/gmao-stock/pkg/config"
	"github.com/emicampus/gmao-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén durable según driver configurado. El libro xlsx de dos hojas
	// es el modo por defecto (compartido con el departamento).
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

	stockLedger, err := ledger.NewStockLedger(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar libro de stock")
	}
	log.Info().Int("piezas", len(stockLedger.List())).Msg("stock cargado en memoria")

	userRepo, err := memory.NewUserRepository(cfg.Auth.Users)
	if err != nil {
		log.Fatal().Err(err).Msg("aprovisionar cuentas de operador")
	}
	if userRepo.Count() == 0 {
		log.Warn().Msg("AUTH_USERS vacío: nadie podrá iniciar sesión")
	}

	movementLogUC := report.NewMovementLogUseCase(store)
	receiveUC := receiving.NewReceiveUseCase(stockLedger, infrapdf.NewMarotoReceiptGenerator())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// El decodificador de códigos es una capacidad externa que esta
	// instalación no tiene: la ruta /api/scan responde 503 y la interfaz
	// cae a la entrada manual del identificador.
	disabledDecoder := scan.DecoderFunc(func(context.Context, []byte) (string, error) {
		return "", domain.ErrScanUnavailable
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GMAO Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      stockLedger,
		MovementLog: movementLogUC,
		Receive:     receiveUC,
		ScanDecoder: disabledDecoder,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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
