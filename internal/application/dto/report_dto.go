package dto

import (
	"time"

	"github.com/emicampus/gmao-stock/internal/application/report"
)

// PartTotalResponse total retirado por pieza dentro de la ventana.
type PartTotalResponse struct {
	PartID      string `json:"part_id"`
	Designation string `json:"designation"`
	Total       int64  `json:"total"`
}

// WeeklyReportResponse informe semanal de salidas.
type WeeklyReportResponse struct {
	From      time.Time           `json:"from"`
	To        time.Time           `json:"to"`
	Movements []MovementResponse  `json:"movements"`
	Totals    []PartTotalResponse `json:"totals"`
}

// ToWeeklyReportResponse mapea el informe a la respuesta HTTP.
func ToWeeklyReportResponse(rep *report.WeeklyReport) WeeklyReportResponse {
	totals := make([]PartTotalResponse, len(rep.Totals))
	for i, t := range rep.Totals {
		totals[i] = PartTotalResponse{PartID: t.PartID, Designation: t.Designation, Total: t.Total}
	}
	return WeeklyReportResponse{
		From:      rep.From,
		To:        rep.To,
		Movements: ToMovementResponses(rep.Movements),
		Totals:    totals,
	}
}
