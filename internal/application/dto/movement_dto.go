package dto

import (
	"time"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// OutboundRequest salida de material (sortie) por identificador.
type OutboundRequest struct {
	PartID   string `json:"part_id"`
	Quantity int64  `json:"quantity"`
}

// MovementResponse registro de salida para la interfaz.
type MovementResponse struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	PartID      string    `json:"part_id"`
	Designation string    `json:"designation"`
	Quantity    int64     `json:"quantity"`
	Operator    string    `json:"operator"`
}

// ToMovementResponse mapea la entidad a la respuesta HTTP.
func ToMovementResponse(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		PartID:      m.PartID,
		Designation: m.Designation,
		Quantity:    m.Quantity,
		Operator:    m.Operator,
	}
}

// ToMovementResponses mapea una lista de movimientos.
func ToMovementResponses(movs []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, len(movs))
	for i, m := range movs {
		out[i] = ToMovementResponse(m)
	}
	return out
}
