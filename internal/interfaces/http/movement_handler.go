package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/dto"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/report"
)

// MovementHandler maneja las salidas de material y su consulta (protegido).
type MovementHandler struct {
	ledger *ledger.StockLedger
	log    *report.MovementLogUseCase
}

// NewMovementHandler construye el handler de salidas.
func NewMovementHandler(l *ledger.StockLedger, log *report.MovementLogUseCase) *MovementHandler {
	return &MovementHandler{ledger: l, log: log}
}

// Outbound godoc
// @Summary      Registrar salida de material (sortie)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OutboundRequest  true  "part_id y quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/out [post]
func (h *MovementHandler) Outbound(c *fiber.Ctx) error {
	var in dto.OutboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "part_id es requerido"})
	}
	// La salida queda firmada con el nombre del operador autenticado.
	operator := GetUserName(c)
	if operator == "" {
		operator = GetUsername(c)
	}
	mov, err := h.ledger.AdjustOutbound(c.Context(), in.PartID, in.Quantity, operator)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// List godoc
// @Summary      Consultar registro de salidas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        since  query  string  false  "Corte RFC3339; solo salidas estrictamente posteriores"
// @Success      200    {array}  dto.MovementResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	cutoff := time.Time{}
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "since debe ser una fecha RFC3339"})
		}
		cutoff = parsed
	}
	movs, err := h.log.QuerySince(c.Context(), cutoff)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(movs))
}
