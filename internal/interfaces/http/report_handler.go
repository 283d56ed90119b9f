package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emicampus/gmao-stock/internal/application/dto"
	"github.com/emicampus/gmao-stock/internal/application/report"
)

// ReportHandler maneja los informes de consumo (protegido).
type ReportHandler struct {
	uc *report.MovementLogUseCase
}

// NewReportHandler construye el handler de informes.
func NewReportHandler(uc *report.MovementLogUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Weekly godoc
// @Summary      Informe de salidas de los últimos 7 días
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeeklyReportResponse
// @Router       /api/reports/weekly [get]
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	rep, err := h.uc.Weekly(c.Context(), time.Now())
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.ToWeeklyReportResponse(rep))
}
