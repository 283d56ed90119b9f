// Package xlsx implementa el LedgerStore sobre un libro de cálculo de dos
// hojas: "Stock" (tabla de piezas, se reescribe completa) y "Sorties"
// (registro append-only de salidas). El libro es el formato que el taller
// ya conocía; la carga tolera filas en blanco, filas de totales y números
// escritos como texto suelto.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

var _ repository.LedgerStore = (*Store)(nil)

const (
	sheetStock     = "Stock"
	sheetMovements = "Sorties"

	// Marca de fila de total calculado en la hoja Stock: se ignora al cargar.
	totalRowMark = "TOTAL"

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	stockHeader    = []string{"ID_QR", "Designation", "Quantite", "Prix_Unitaire_DH", "Seuil_Alerte"}
	movementHeader = []string{"Date", "ID_QR", "Designation", "Quantite", "Technicien"}
)

// Store almacén durable sobre un fichero xlsx. Un mutex propio serializa
// los accesos al fichero (el libro se reescribe entero en cada guardado).
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore construye el store; el libro se crea al primer guardado si no existe.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadStock lee la hoja Stock. Un fichero inexistente equivale a un
// catálogo vacío (primer arranque).
func (s *Store) LoadStock(_ context.Context) ([]entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetStock)
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheetStock, err)
	}

	var parts []entity.Part
	for i, row := range rows {
		if i == 0 {
			continue // cabecera
		}
		id := strings.TrimSpace(cell(row, 0))
		if id == "" || strings.EqualFold(id, totalRowMark) {
			continue
		}
		parts = append(parts, entity.Part{
			ID:             id,
			Designation:    strings.TrimSpace(cell(row, 1)),
			Quantity:       coerceInt(cell(row, 2)),
			UnitPrice:      coerceDecimal(cell(row, 3)),
			AlertThreshold: coerceInt(cell(row, 4)),
		})
	}
	return parts, nil
}

// ReplaceStock reescribe la hoja Stock completa (el store no soporta
// parches por fila) conservando la hoja Sorties, y guarda de forma
// atómica vía fichero temporal + rename.
func (s *Store) ReplaceStock(_ context.Context, parts []entity.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrInit()
	if err != nil {
		return err
	}
	defer f.Close()

	// Borrar y recrear la hoja elimina las filas sobrantes de la versión anterior.
	if err := f.DeleteSheet(sheetStock); err != nil {
		return fmt.Errorf("xlsx: borrar hoja %s: %w", sheetStock, err)
	}
	if _, err := f.NewSheet(sheetStock); err != nil {
		return fmt.Errorf("xlsx: recrear hoja %s: %w", sheetStock, err)
	}
	if err := writeHeader(f, sheetStock, stockHeader); err != nil {
		return err
	}
	for i, p := range parts {
		rowIdx := i + 2
		values := []interface{}{p.ID, p.Designation, p.Quantity, p.UnitPrice.String(), p.AlertThreshold}
		for col, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err := f.SetCellValue(sheetStock, cellName, v); err != nil {
				return fmt.Errorf("xlsx: escribir fila %d: %w", rowIdx, err)
			}
		}
	}
	return s.saveAtomic(f)
}

// AppendMovement añade una fila al final de la hoja Sorties.
func (s *Store) AppendMovement(_ context.Context, mov entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrInit()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetMovements)
	if err != nil {
		return fmt.Errorf("xlsx: leer hoja %s: %w", sheetMovements, err)
	}
	rowIdx := len(rows) + 1
	if rowIdx == 1 {
		if err := writeHeader(f, sheetMovements, movementHeader); err != nil {
			return err
		}
		rowIdx = 2
	}

	values := []interface{}{
		mov.Timestamp.Format(timestampLayout),
		mov.PartID,
		mov.Designation,
		mov.Quantity,
		mov.Operator,
	}
	for col, v := range values {
		cellName, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err := f.SetCellValue(sheetMovements, cellName, v); err != nil {
			return fmt.Errorf("xlsx: escribir movimiento: %w", err)
		}
	}
	return s.saveAtomic(f)
}

// LoadMovements lee la hoja Sorties completa en orden de fila.
func (s *Store) LoadMovements(_ context.Context) ([]entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	rows, err := f.GetRows(sheetMovements)
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheetMovements, err)
	}

	var movs []entity.Movement
	for i, row := range rows {
		if i == 0 {
			continue
		}
		partID := strings.TrimSpace(cell(row, 1))
		if partID == "" {
			continue
		}
		ts, _ := time.ParseInLocation(timestampLayout, strings.TrimSpace(cell(row, 0)), time.Local)
		movs = append(movs, entity.Movement{
			Timestamp:   ts,
			PartID:      partID,
			Designation: strings.TrimSpace(cell(row, 2)),
			Quantity:    coerceInt(cell(row, 3)),
			Operator:    strings.TrimSpace(cell(row, 4)),
		})
	}
	return movs, nil
}

// ── fichero ───────────────────────────────────────────────────────────────────

// open abre el libro existente; devuelve nil, nil si no existe todavía.
func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("xlsx: abrir %s: %w", s.path, err)
	}
	return f, nil
}

// openOrInit abre el libro o crea uno nuevo con las dos hojas y cabeceras.
func (s *Store) openOrInit() (*excelize.File, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	if f != nil {
		return f, nil
	}

	f = excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetStock); err != nil {
		return nil, fmt.Errorf("xlsx: inicializar libro: %w", err)
	}
	if _, err := f.NewSheet(sheetMovements); err != nil {
		return nil, fmt.Errorf("xlsx: inicializar libro: %w", err)
	}
	if err := writeHeader(f, sheetStock, stockHeader); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheetMovements, movementHeader); err != nil {
		return nil, err
	}
	return f, nil
}

// writeHeader escribe la fila 1 y le reaplica el estilo (negrita + relleno),
// que se pierde al recrear la hoja.
func writeHeader(f *excelize.File, sheet string, header []string) error {
	for col, h := range header {
		cellName, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cellName, h); err != nil {
			return fmt.Errorf("xlsx: escribir cabecera de %s: %w", sheet, err)
		}
	}
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C8DCFF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, styleID); err != nil {
		return fmt.Errorf("xlsx: aplicar estilo de cabecera: %w", err)
	}
	return nil
}

// saveAtomic guarda en un temporal del mismo directorio y renombra encima
// del libro, para que un corte a mitad de escritura no deje el fichero corrupto.
func (s *Store) saveAtomic(f *excelize.File) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("xlsx: crear directorio: %w", err)
	}
	// El temporal conserva la extensión .xlsx porque excelize deduce el
	// formato del libro a partir de ella.
	tmp := s.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("xlsx: renombrar sobre %s: %w", s.path, err)
	}
	return nil
}

// ── coerción ──────────────────────────────────────────────────────────────────

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// coerceInt interpreta un entero escrito de forma suelta ("12", " 12 ",
// "12.0", "12,0"); el valor faltante o ilegible vale 0.
func coerceInt(raw string) int64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(fl)
	}
	return 0
}

// coerceDecimal interpreta un importe escrito de forma suelta; el valor
// faltante o ilegible vale 0.
func coerceDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	raw = strings.TrimSuffix(raw, " DH")
	if raw == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return d
	}
	return decimal.Zero
}
