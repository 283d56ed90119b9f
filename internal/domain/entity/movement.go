package entity

import "time"

// Movement salida de material (sortie) del almacén. El registro es
// append-only: las entradas de proveedor no generan Movement, solo
// incrementan el stock.
//
// Designation se copia de la pieza en el momento de la salida para que
// el historial siga siendo legible si la pieza se renombra o se retira
// del catálogo.
type Movement struct {
	ID          string
	Timestamp   time.Time
	PartID      string
	Designation string
	Quantity    int64
	Operator    string
}
