package http

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/dto"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/scan"
	"github.com/emicampus/gmao-stock/internal/domain"
)

// ScanHandler decodifica una imagen de código QR/barras y resuelve la pieza
// (protegido). El decodificador es una capacidad externa opcional: sin él,
// la ruta responde 503 y la interfaz cae a la entrada manual del ID.
type ScanHandler struct {
	decoder scan.Decoder
	ledger  *ledger.StockLedger
}

// NewScanHandler construye el handler de escaneo.
func NewScanHandler(decoder scan.Decoder, l *ledger.StockLedger) *ScanHandler {
	return &ScanHandler{decoder: decoder, ledger: l}
}

type scanRequest struct {
	// Imagen codificada en base64 estándar.
	Image string `json:"image"`
}

// Scan godoc
// @Summary      Resolver pieza a partir de una imagen de código
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "image en base64"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var in scanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image es requerido"})
	}
	image, err := base64.StdEncoding.DecodeString(in.Image)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image debe ser base64 válido"})
	}

	id, err := h.decoder.Decode(c.Context(), image)
	if err != nil {
		if errors.Is(err, domain.ErrScanUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SCAN_UNAVAILABLE", Message: "decodificador no disponible; introduzca el ID manualmente"})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SCAN_FAILED", Message: "no se pudo decodificar la imagen"})
	}

	part, err := h.ledger.Lookup(id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.ToPartResponse(part))
}
