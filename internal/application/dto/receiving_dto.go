package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// ReceiveRequest recepción de proveedor con una o varias líneas.
type ReceiveRequest struct {
	Supplier string               `json:"supplier"`
	Items    []ReceiveItemRequest `json:"items"`
}

// ReceiveItemRequest línea de la recepción.
type ReceiveItemRequest struct {
	PartID   string `json:"part_id"`
	Quantity int64  `json:"quantity"`
}

// ReceiptLineResponse línea del bon de réception.
type ReceiptLineResponse struct {
	PartID      string          `json:"part_id"`
	Designation string          `json:"designation"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// ReceiptResponse resumen del bon de réception.
type ReceiptResponse struct {
	Reference  string                `json:"reference"`
	Supplier   string                `json:"supplier"`
	Operator   string                `json:"operator"`
	Date       time.Time             `json:"date"`
	Lines      []ReceiptLineResponse `json:"lines"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
}

// ToReceiptResponse mapea el receipt a la respuesta HTTP.
func ToReceiptResponse(r *entity.Receipt) ReceiptResponse {
	lines := make([]ReceiptLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = ReceiptLineResponse{
			PartID:      l.PartID,
			Designation: l.Designation,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		}
	}
	return ReceiptResponse{
		Reference:  r.Reference,
		Supplier:   r.Supplier,
		Operator:   r.Operator,
		Date:       r.Date,
		Lines:      lines,
		GrandTotal: r.GrandTotal,
	}
}
