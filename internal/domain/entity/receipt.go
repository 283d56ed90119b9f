package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine línea del bon de réception: una pieza recibida con su
// valoración al precio unitario vigente en el catálogo.
type ReceiptLine struct {
	PartID      string
	Designation string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Receipt bon de réception / facturation stock emitido al registrar una
// entrada de proveedor. Es un documento efímero: se imprime o descarga
// en el momento, no se persiste.
type Receipt struct {
	Reference  string // "BR-" + fecha y hora de emisión
	Supplier   string
	Operator   string
	Date       time.Time
	Lines      []ReceiptLine
	GrandTotal decimal.Decimal
}
