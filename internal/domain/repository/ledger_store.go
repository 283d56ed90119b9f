package repository

import (
	"context"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// LedgerStore espejo durable del ledger de stock. El ledger en memoria es
// la fuente de verdad mientras el proceso corre; el store solo refleja su
// último estado confirmado.
//
// ReplaceStock tiene semántica de sobreescritura total: el store no soporta
// parches por fila. LoadStock debe tolerar filas en blanco o de totales
// calculados y coercionar columnas numéricas con texto suelto (faltante = 0).
type LedgerStore interface {
	LoadStock(ctx context.Context) ([]entity.Part, error)
	ReplaceStock(ctx context.Context, parts []entity.Part) error
	AppendMovement(ctx context.Context, mov entity.Movement) error
	LoadMovements(ctx context.Context) ([]entity.Movement, error)
}
