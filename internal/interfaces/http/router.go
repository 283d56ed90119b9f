package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/auth"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/receiving"
	"github.com/emicampus/gmao-stock/internal/application/report"
	"github.com/emicampus/gmao-stock/internal/application/scan"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *ledger.StockLedger
	MovementLog *report.MovementLogUseCase
	Receive     *receiving.ReceiveUseCase
	ScanDecoder scan.Decoder
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock: consulta para todos, mutaciones de catálogo solo admin
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stock.Get("/", stockHandler.List)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/", RequireRole(entity.RoleAdmin), stockHandler.Create)
	stock.Put("/:id", RequireRole(entity.RoleAdmin), stockHandler.Update)
	stock.Delete("/:id", RequireRole(entity.RoleAdmin), stockHandler.Delete)

	// Salidas de material (cualquier operador autenticado)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger, deps.MovementLog)
	movements.Post("/out", movementHandler.Outbound)
	movements.Get("/", movementHandler.List)

	// Recepciones de proveedor + bon de réception
	receivingHandler := NewReceivingHandler(deps.Receive)
	protected.Post("/receiving", receivingHandler.Receive)

	// Informes
	reportHandler := NewReportHandler(deps.MovementLog)
	protected.Get("/reports/weekly", reportHandler.Weekly)

	// Escaneo de códigos (capacidad externa opcional)
	scanHandler := NewScanHandler(deps.ScanDecoder, deps.Ledger)
	protected.Post("/scan", scanHandler.Scan)
}
