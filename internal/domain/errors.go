package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("pieza no encontrada")
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicateID       = errors.New("identificador duplicado")
	ErrInvalidID         = errors.New("identificador inválido")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrScanUnavailable   = errors.New("decodificación de códigos no disponible")
)

// InsufficientStockError lleva la cantidad disponible para que la capa de
// presentación pueda mostrarla. errors.Is(err, ErrInsufficientStock)
// funciona sobre este tipo.
type InsufficientStockError struct {
	PartID    string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d",
		e.PartID, e.Requested, e.Available)
}

// Is permite la comparación con el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
