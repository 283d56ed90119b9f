package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/dto"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/domain"
)

// StockHandler maneja el catálogo y los niveles de stock (protegido).
type StockHandler struct {
	ledger *ledger.StockLedger
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(l *ledger.StockLedger) *StockHandler {
	return &StockHandler{ledger: l}
}

// ledgerError traduce los errores del libro de stock a respuestas HTTP.
// Se comparte entre los handlers de stock, salidas y recepciones.
func ledgerError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		available := insufficient.Available
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   "stock insuficiente para la cantidad solicitada",
			Available: &available,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pieza no encontrada"})
	case errors.Is(err, domain.ErrDuplicateID):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ID", Message: "ya existe una pieza con ese identificador"})
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "identificador vacío o inválido"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la cantidad debe ser positiva"})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo guardar en el almacén durable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// List godoc
// @Summary      Listar stock completo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.ToPartResponses(h.ledger.List()))
}

// LowStock godoc
// @Summary      Piezas en o bajo el umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	return c.JSON(dto.ToPartResponses(h.ledger.LowStock()))
}

// GetByID godoc
// @Summary      Obtener pieza por identificador
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Identificador de la pieza (ej. PMP-01)"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	part, err := h.ledger.Lookup(c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.ToPartResponse(part))
}

// Create godoc
// @Summary      Dar de alta una pieza
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Datos de la pieza"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Designation == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "designation es requerido"})
	}
	if in.Quantity < 0 || in.AlertThreshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity y alert_threshold no pueden ser negativos"})
	}
	part, err := h.ledger.AddPart(c.Context(), in.ID, in.Designation, in.Quantity, in.UnitPrice, in.AlertThreshold)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPartResponse(part))
}

// Update godoc
// @Summary      Reemplazar atributos de una pieza
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Identificador de la pieza"
// @Param        body  body  dto.UpdatePartRequest  true  "Atributos nuevos"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Quantity < 0 || in.AlertThreshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity y alert_threshold no pueden ser negativos"})
	}
	part, err := h.ledger.UpdatePart(c.Context(), c.Params("id"), ledger.UpdateFields{
		Designation:    in.Designation,
		Quantity:       in.Quantity,
		UnitPrice:      in.UnitPrice,
		AlertThreshold: in.AlertThreshold,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.ToPartResponse(part))
}

// Delete godoc
// @Summary      Retirar una pieza del catálogo
// @Tags         stock
// @Security     Bearer
// @Param        id   path  string  true  "Identificador de la pieza"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.RemovePart(c.Context(), c.Params("id")); err != nil {
		return ledgerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
