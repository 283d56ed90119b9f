package receiving_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/receiving"
	"github.com/emicampus/gmao-stock/internal/domain"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// memStore espejo mínimo en memoria para montar un ledger real en los tests.
type memStore struct {
	mu    sync.Mutex
	stock []entity.Part
}

func (s *memStore) LoadStock(context.Context) ([]entity.Part, error) {
	return append([]entity.Part(nil), s.stock...), nil
}
func (s *memStore) ReplaceStock(_ context.Context, parts []entity.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = append([]entity.Part(nil), parts...)
	return nil
}
func (s *memStore) AppendMovement(context.Context, entity.Movement) error    { return nil }
func (s *memStore) LoadMovements(context.Context) ([]entity.Movement, error) { return nil, nil }

// fakePDF generador de documento que registra el receipt recibido.
type fakePDF struct {
	got  *entity.Receipt
	fail bool
}

func (f *fakePDF) GenerateReceiptPDF(_ context.Context, r *entity.Receipt) ([]byte, error) {
	if f.fail {
		return nil, errors.New("motor pdf caído (simulado)")
	}
	f.got = r
	return []byte("%PDF-1.7 fake"), nil
}

func newReceiveUC(t *testing.T, pdf receiving.ReceiptPDFGenerator) (*receiving.ReceiveUseCase, *ledger.StockLedger) {
	t.Helper()
	store := &memStore{stock: []entity.Part{
		{ID: "GLY-03", Designation: "Bidon Glycol 20L", Quantity: 5, UnitPrice: decimal.NewFromInt(800)},
		{ID: "SEL-04", Designation: "Sel Adoucisseur (25kg)", Quantity: 20, UnitPrice: decimal.NewFromFloat(95.50)},
	}}
	l, err := ledger.NewStockLedger(context.Background(), store)
	require.NoError(t, err)
	return receiving.NewReceiveUseCase(l, pdf), l
}

func TestReceive_IncrementaYTotalesExactos(t *testing.T) {
	uc, l := newReceiveUC(t, &fakePDF{})

	receipt, err := uc.Receive(context.Background(), "Sonelec SARL", "fatima", []receiving.ReceiveItem{
		{PartID: "GLY-03", Quantity: 3},
		{PartID: "sel-04", Quantity: 4},
	})
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Sonelec SARL", receipt.Supplier)
	assert.NotEmpty(t, receipt.Reference)
	assert.True(t, receipt.Lines[0].Total.Equal(decimal.NewFromInt(2400)), "3 x 800 = 2400")
	assert.True(t, receipt.Lines[1].Total.Equal(decimal.NewFromFloat(382.00)), "4 x 95.50 = 382.00 exacto")
	assert.True(t, receipt.GrandTotal.Equal(decimal.NewFromInt(2782)),
		"el total general es la suma exacta de los totales de línea, sin redondeo flotante")

	p, _ := l.Lookup("GLY-03")
	assert.Equal(t, int64(8), p.Quantity)
	p, _ = l.Lookup("SEL-04")
	assert.Equal(t, int64(24), p.Quantity)
}

func TestReceive_LineaDesconocidaNoGeneraDocumento(t *testing.T) {
	pdf := &fakePDF{}
	uc, l := newReceiveUC(t, pdf)

	_, _, err := uc.ReceiveWithDocument(context.Background(), "Sonelec SARL", "fatima", []receiving.ReceiveItem{
		{PartID: "GLY-03", Quantity: 2},
		{PartID: "NOPE-99", Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, pdf.got, "sin documento cuando una línea falla")

	// La primera línea ya quedó confirmada (cada entrada es su propia operación).
	p, _ := l.Lookup("GLY-03")
	assert.Equal(t, int64(7), p.Quantity)
}

func TestReceive_SinLineas(t *testing.T) {
	uc, _ := newReceiveUC(t, &fakePDF{})
	_, err := uc.Receive(context.Background(), "Sonelec SARL", "fatima", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReceiveWithDocument_DevuelvePDF(t *testing.T) {
	pdf := &fakePDF{}
	uc, _ := newReceiveUC(t, pdf)

	receipt, doc, err := uc.ReceiveWithDocument(context.Background(), "Sonelec SARL", "fatima",
		[]receiving.ReceiveItem{{PartID: "GLY-03", Quantity: 1}})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	require.NotNil(t, pdf.got)
	assert.Equal(t, receipt.Reference, pdf.got.Reference, "el generador recibe el mismo receipt")
}

func TestReceiveWithDocument_FalloPDF(t *testing.T) {
	uc, l := newReceiveUC(t, &fakePDF{fail: true})

	_, _, err := uc.ReceiveWithDocument(context.Background(), "Sonelec SARL", "fatima",
		[]receiving.ReceiveItem{{PartID: "GLY-03", Quantity: 1}})
	require.Error(t, err)

	// El incremento de stock ya está confirmado; solo falla el documento.
	p, _ := l.Lookup("GLY-03")
	assert.Equal(t, int64(6), p.Quantity)
}
