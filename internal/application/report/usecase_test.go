package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emicampus/gmao-stock/internal/application/report"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// logStore stub de solo lectura del registro de movimientos.
type logStore struct {
	movements []entity.Movement
}

func (s *logStore) LoadStock(context.Context) ([]entity.Part, error)        { return nil, nil }
func (s *logStore) ReplaceStock(context.Context, []entity.Part) error      { return nil }
func (s *logStore) AppendMovement(context.Context, entity.Movement) error  { return nil }
func (s *logStore) LoadMovements(context.Context) ([]entity.Movement, error) {
	return append([]entity.Movement(nil), s.movements...), nil
}

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func mov(id string, offset time.Duration, qty int64) entity.Movement {
	return entity.Movement{
		ID:          id,
		Timestamp:   base.Add(offset),
		PartID:      "PMP-01",
		Designation: "Circulateur",
		Quantity:    qty,
		Operator:    "brahim",
	}
}

func TestQuerySince_EstrictamentePosterioresYOrdenados(t *testing.T) {
	store := &logStore{movements: []entity.Movement{
		mov("m1", 0, 1),
		mov("m2", time.Hour, 2),
		mov("m3", 2*time.Hour, 3),
	}}
	uc := report.NewMovementLogUseCase(store)

	// El corte coincide exactamente con m1: queda fuera (estrictamente >).
	got, err := uc.QuerySince(context.Background(), base)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].ID, "orden de creación preservado")
	assert.Equal(t, "m3", got[1].ID)
}

func TestQuerySince_Idempotente(t *testing.T) {
	store := &logStore{movements: []entity.Movement{mov("m1", 0, 1), mov("m2", time.Hour, 2)}}
	uc := report.NewMovementLogUseCase(store)
	cutoff := base.Add(-time.Minute)

	first, err := uc.QuerySince(context.Background(), cutoff)
	require.NoError(t, err)
	second, err := uc.QuerySince(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, first, second, "sin movimientos nuevos la consulta devuelve lo mismo")
}

func TestWeekly_VentanaYTotales(t *testing.T) {
	now := base.Add(10 * 24 * time.Hour)
	store := &logStore{movements: []entity.Movement{
		mov("viejo", 0, 5), // hace 10 días: fuera de ventana
		{ID: "a", Timestamp: now.Add(-2 * 24 * time.Hour), PartID: "PMP-01", Designation: "Circulateur", Quantity: 2},
		{ID: "b", Timestamp: now.Add(-24 * time.Hour), PartID: "PMP-01", Designation: "Circulateur Wilo", Quantity: 3},
		{ID: "c", Timestamp: now.Add(-time.Hour), PartID: "ANO-02", Designation: "Anode", Quantity: 1},
	}}
	uc := report.NewMovementLogUseCase(store)

	rep, err := uc.Weekly(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, rep.Movements, 3, "el movimiento de hace 10 días queda fuera")
	require.Len(t, rep.Totals, 2)
	assert.Equal(t, "ANO-02", rep.Totals[0].PartID)
	assert.Equal(t, int64(1), rep.Totals[0].Total)
	assert.Equal(t, "PMP-01", rep.Totals[1].PartID)
	assert.Equal(t, int64(5), rep.Totals[1].Total)
	assert.Equal(t, "Circulateur Wilo", rep.Totals[1].Designation,
		"el total usa la designación más reciente de la ventana")
}

func TestWeekly_SinMovimientos(t *testing.T) {
	uc := report.NewMovementLogUseCase(&logStore{})
	rep, err := uc.Weekly(context.Background(), base)
	require.NoError(t, err)
	assert.Empty(t, rep.Movements)
	assert.Empty(t, rep.Totals)
}
