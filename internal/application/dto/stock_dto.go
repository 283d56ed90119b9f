package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// PartResponse pieza del catálogo tal como la ve la interfaz.
type PartResponse struct {
	ID             string          `json:"id"`
	Designation    string          `json:"designation"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AlertThreshold int64           `json:"alert_threshold"`
	LowStock       bool            `json:"low_stock"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToPartResponse mapea la entidad a la respuesta HTTP.
func ToPartResponse(p entity.Part) PartResponse {
	return PartResponse{
		ID:             p.ID,
		Designation:    p.Designation,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		AlertThreshold: p.AlertThreshold,
		LowStock:       p.LowStock(),
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToPartResponses mapea una lista de piezas.
func ToPartResponses(parts []entity.Part) []PartResponse {
	out := make([]PartResponse, len(parts))
	for i, p := range parts {
		out[i] = ToPartResponse(p)
	}
	return out
}

// CreatePartRequest alta de pieza.
type CreatePartRequest struct {
	ID             string          `json:"id"`
	Designation    string          `json:"designation"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AlertThreshold int64           `json:"alert_threshold"`
}

// UpdatePartRequest reemplazo en bloque de los atributos mutables.
type UpdatePartRequest struct {
	Designation    string          `json:"designation"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AlertThreshold int64           `json:"alert_threshold"`
}
