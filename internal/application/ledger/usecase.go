package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/domain"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

// Reintentos acotados de escritura al store antes de rendirse.
const (
	persistAttempts = 3
	persistBackoff  = 50 * time.Millisecond
)

// StockLedger tabla autoritativa de piezas en memoria. Es la única fuente
// de verdad mientras el proceso corre; el LedgerStore es un espejo durable
// que se reescribe completo tras cada mutación confirmada.
//
// Un solo mutex serializa todos los puntos de entrada mutantes: dos salidas
// concurrentes sobre la misma pieza no pueden pasar ambas la verificación
// de suficiencia contra una cantidad obsoleta. Con decenas de piezas y
// operaciones esporádicas, el lock grueso es suficiente.
type StockLedger struct {
	mu    sync.Mutex
	store repository.LedgerStore
	parts []*entity.Part // orden de inserción (orden de visualización)
	index map[string]int // ID normalizado -> posición en parts
}

// NewStockLedger carga el estado inicial desde el store y construye el ledger.
func NewStockLedger(ctx context.Context, store repository.LedgerStore) (*StockLedger, error) {
	rows, err := store.LoadStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar stock inicial: %w", err)
	}
	l := &StockLedger{
		store: store,
		parts: make([]*entity.Part, 0, len(rows)),
		index: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		id := domain.NormalizeID(row.ID)
		if id == "" {
			continue
		}
		if _, dup := l.index[id]; dup {
			continue
		}
		p := row
		p.ID = id
		l.index[id] = len(l.parts)
		l.parts = append(l.parts, &p)
	}
	return l, nil
}

// Lookup devuelve una copia de la pieza con el identificador dado
// (normalizado antes de comparar) o ErrNotFound.
func (l *StockLedger) Lookup(id string) (entity.Part, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[domain.NormalizeID(id)]
	if !ok {
		return entity.Part{}, domain.ErrNotFound
	}
	return *l.parts[i], nil
}

// List devuelve una copia de todas las piezas en orden de inserción.
func (l *StockLedger) List() []entity.Part {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entity.Part, len(l.parts))
	for i, p := range l.parts {
		out[i] = *p
	}
	return out
}

// LowStock devuelve las piezas en o por debajo de su umbral de alerta.
func (l *StockLedger) LowStock() []entity.Part {
	return lo.Filter(l.List(), func(p entity.Part, _ int) bool {
		return p.LowStock()
	})
}

// AdjustOutbound registra una salida (sortie): verifica suficiencia,
// decrementa en memoria, persiste el stock y el registro de movimiento, y
// devuelve el movimiento creado. La mutación en memoria y la escritura
// durable son un solo paso lógico: si la persistencia falla, el decremento
// se revierte antes de devolver el error.
func (l *StockLedger) AdjustOutbound(ctx context.Context, id string, quantity int64, operator string) (entity.Movement, error) {
	if quantity <= 0 {
		return entity.Movement{}, domain.ErrInvalidQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[domain.NormalizeID(id)]
	if !ok {
		return entity.Movement{}, domain.ErrNotFound
	}
	p := l.parts[i]
	if p.Quantity < quantity {
		return entity.Movement{}, &domain.InsufficientStockError{
			PartID:    p.ID,
			Requested: quantity,
			Available: p.Quantity,
		}
	}

	now := time.Now()
	prev := *p
	p.Quantity -= quantity
	p.UpdatedAt = now

	if err := l.persistStockLocked(ctx); err != nil {
		*p = prev
		return entity.Movement{}, err
	}

	mov := entity.Movement{
		ID:          uuid.New().String(),
		Timestamp:   now,
		PartID:      p.ID,
		Designation: p.Designation, // designación al momento de la salida
		Quantity:    quantity,
		Operator:    operator,
	}
	if err := l.appendMovementLocked(ctx, mov); err != nil {
		// Revertir en memoria y reescribir el stock previo para que memoria
		// y store no diverjan. Si la compensación también falla, el error
		// original manda.
		*p = prev
		if cErr := l.persistStockLocked(ctx); cErr != nil {
			return entity.Movement{}, fmt.Errorf("registrar salida: %w (compensación: %v)", err, cErr)
		}
		return entity.Movement{}, err
	}
	return mov, nil
}

// AdjustInbound registra una entrada (réception): incrementa la cantidad y
// persiste. Las entradas no generan registro de movimiento; solo las
// salidas se auditan. El bon de réception PDF es el soporte documental
// de la entrada.
func (l *StockLedger) AdjustInbound(ctx context.Context, id string, quantity int64) (entity.Part, error) {
	if quantity <= 0 {
		return entity.Part{}, domain.ErrInvalidQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[domain.NormalizeID(id)]
	if !ok {
		return entity.Part{}, domain.ErrNotFound
	}
	p := l.parts[i]

	prev := *p
	p.Quantity += quantity
	p.UpdatedAt = time.Now()

	if err := l.persistStockLocked(ctx); err != nil {
		*p = prev
		return entity.Part{}, err
	}
	return *p, nil
}

// AddPart da de alta una pieza nueva en el catálogo.
func (l *StockLedger) AddPart(ctx context.Context, id, designation string, quantity int64, unitPrice decimal.Decimal, threshold int64) (entity.Part, error) {
	norm := domain.NormalizeID(id)
	if norm == "" {
		return entity.Part{}, domain.ErrInvalidID
	}
	if quantity < 0 || threshold < 0 || unitPrice.IsNegative() {
		return entity.Part{}, domain.ErrInvalidQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.index[norm]; dup {
		return entity.Part{}, domain.ErrDuplicateID
	}

	now := time.Now()
	p := &entity.Part{
		ID:             norm,
		Designation:    designation,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		AlertThreshold: threshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	l.index[norm] = len(l.parts)
	l.parts = append(l.parts, p)

	if err := l.persistStockLocked(ctx); err != nil {
		l.parts = l.parts[:len(l.parts)-1]
		delete(l.index, norm)
		return entity.Part{}, err
	}
	return *p, nil
}

// UpdateFields atributos mutables de una pieza; UpdatePart los reemplaza
// en bloque (no hay parche parcial, igual que el store).
type UpdateFields struct {
	Designation    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	AlertThreshold int64
}

// UpdatePart reemplaza los atributos mutables de la pieza.
func (l *StockLedger) UpdatePart(ctx context.Context, id string, fields UpdateFields) (entity.Part, error) {
	if fields.Quantity < 0 || fields.AlertThreshold < 0 || fields.UnitPrice.IsNegative() {
		return entity.Part{}, domain.ErrInvalidQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[domain.NormalizeID(id)]
	if !ok {
		return entity.Part{}, domain.ErrNotFound
	}
	p := l.parts[i]

	prev := *p
	p.Designation = fields.Designation
	p.Quantity = fields.Quantity
	p.UnitPrice = fields.UnitPrice
	p.AlertThreshold = fields.AlertThreshold
	p.UpdatedAt = time.Now()

	if err := l.persistStockLocked(ctx); err != nil {
		*p = prev
		return entity.Part{}, err
	}
	return *p, nil
}

// RemovePart elimina la pieza del catálogo. Los movimientos históricos no
// se tocan: conservan su designación desnormalizada (referencia débil).
func (l *StockLedger) RemovePart(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[domain.NormalizeID(id)]
	if !ok {
		return domain.ErrNotFound
	}

	prevParts := l.parts
	prevIndex := l.index

	parts := make([]*entity.Part, 0, len(prevParts)-1)
	parts = append(parts, prevParts[:i]...)
	parts = append(parts, prevParts[i+1:]...)
	index := make(map[string]int, len(parts))
	for j, p := range parts {
		index[p.ID] = j
	}
	l.parts = parts
	l.index = index

	if err := l.persistStockLocked(ctx); err != nil {
		l.parts = prevParts
		l.index = prevIndex
		return err
	}
	return nil
}

// persistStockLocked reescribe la tabla completa en el store con reintentos
// acotados. Requiere l.mu tomado.
func (l *StockLedger) persistStockLocked(ctx context.Context) error {
	rows := make([]entity.Part, len(l.parts))
	for i, p := range l.parts {
		rows[i] = *p
	}
	var err error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(persistBackoff)
		}
		if err = l.store.ReplaceStock(ctx, rows); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: escribir stock: %v", domain.ErrPersistence, err)
}

// appendMovementLocked añade el registro de salida con reintentos acotados.
func (l *StockLedger) appendMovementLocked(ctx context.Context, mov entity.Movement) error {
	var err error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(persistBackoff)
		}
		if err = l.store.AppendMovement(ctx, mov); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: escribir movimiento: %v", domain.ErrPersistence, err)
}
