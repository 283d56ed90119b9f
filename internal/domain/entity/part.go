package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part pieza de recambio del almacén de maintenance. El identificador es
// el texto impreso en la etiqueta QR de la estantería (ej. "PMP-01"), ya
// normalizado (sin espacios ni acentos, en mayúsculas).
//
// La cantidad es entera: el almacén no maneja fracciones de unidad. El
// precio unitario en DH usa decimal para que los totales de los bons de
// réception salgan exactos.
type Part struct {
	ID             string
	Designation    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	AlertThreshold int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock indica si la pieza está en o bajo su umbral de alerta.
func (p Part) LowStock() bool {
	return p.Quantity <= p.AlertThreshold
}
