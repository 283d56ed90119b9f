package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

// Ventana del informe semanal.
const weeklyWindow = 7 * 24 * time.Hour

// MovementLogUseCase consultas de solo lectura sobre el registro de
// salidas. El log es append-only: las consultas son re-evaluables y
// devuelven lo mismo mientras no haya movimientos nuevos.
type MovementLogUseCase struct {
	store repository.LedgerStore
}

// NewMovementLogUseCase construye el caso de uso.
func NewMovementLogUseCase(store repository.LedgerStore) *MovementLogUseCase {
	return &MovementLogUseCase{store: store}
}

// QuerySince devuelve los movimientos estrictamente posteriores al corte,
// en orden de creación.
func (uc *MovementLogUseCase) QuerySince(ctx context.Context, cutoff time.Time) ([]entity.Movement, error) {
	movs, err := uc.store.LoadMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos: %w", err)
	}
	return lo.Filter(movs, func(m entity.Movement, _ int) bool {
		return m.Timestamp.After(cutoff)
	}), nil
}

// PartTotal total retirado de una pieza dentro de la ventana del informe.
type PartTotal struct {
	PartID      string
	Designation string
	Total       int64
}

// WeeklyReport informe de movimientos de los últimos 7 días: los registros
// crudos más el total retirado por pieza.
type WeeklyReport struct {
	From      time.Time
	To        time.Time
	Movements []entity.Movement
	Totals    []PartTotal
}

// Weekly construye el informe de la semana que termina en now.
func (uc *MovementLogUseCase) Weekly(ctx context.Context, now time.Time) (*WeeklyReport, error) {
	cutoff := now.Add(-weeklyWindow)
	movs, err := uc.QuerySince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	byPart := lo.GroupBy(movs, func(m entity.Movement) string { return m.PartID })
	totals := make([]PartTotal, 0, len(byPart))
	for partID, ms := range byPart {
		totals = append(totals, PartTotal{
			PartID:      partID,
			Designation: ms[len(ms)-1].Designation, // designación más reciente
			Total:       lo.SumBy(ms, func(m entity.Movement) int64 { return m.Quantity }),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].PartID < totals[j].PartID })

	return &WeeklyReport{From: cutoff, To: now, Movements: movs, Totals: totals}, nil
}
