package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/dto"
	"github.com/emicampus/gmao-stock/internal/application/receiving"
)

// ReceivingHandler maneja las entradas de proveedor y el bon de réception (protegido).
type ReceivingHandler struct {
	uc *receiving.ReceiveUseCase
}

// NewReceivingHandler construye el handler de recepciones.
func NewReceivingHandler(uc *receiving.ReceiveUseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción de proveedor
// @Description  Incrementa el stock de cada línea y emite el bon de réception.
// @Description  Con ?format=pdf la respuesta es el documento PDF para imprimir.
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json (por defecto) o pdf"
// @Param        body    body   dto.ReceiveRequest  true  "supplier y líneas"
// @Success      201     {object}  dto.ReceiptResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/receiving [post]
func (h *ReceivingHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la recepción necesita al menos una línea"})
	}
	items := make([]receiving.ReceiveItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = receiving.ReceiveItem{PartID: it.PartID, Quantity: it.Quantity}
	}
	operator := GetUserName(c)
	if operator == "" {
		operator = GetUsername(c)
	}

	if c.Query("format") == "pdf" {
		receipt, doc, err := h.uc.ReceiveWithDocument(c.Context(), in.Supplier, operator, items)
		if err != nil {
			return ledgerError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s.pdf"`, receipt.Reference))
		return c.Status(fiber.StatusCreated).Send(doc)
	}

	receipt, err := h.uc.Receive(c.Context(), in.Supplier, operator, items)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReceiptResponse(receipt))
}
