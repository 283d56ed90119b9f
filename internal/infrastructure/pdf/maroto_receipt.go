// Package pdf implementa la generación del Bon de Réception / Facturation
// Stock con Maroto v2 (documento de una página que la interfaz ofrece para
// descargar tras registrar una entrada).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BON DE RÉCEPTION / FACTURATION STOCK                       │
//	│  Référence + Date                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Organisme / Fournisseur / Réceptionné par                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Désignation | Qté | Prix Unitaire | Total (DH)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GÉNÉRAL                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/emicampus/gmao-stock/internal/application/receiving"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// Organismo fijo del encabezado del bon.
const organisme = "Campus Universitaire / EMI — Service Maintenance"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ receiving.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa receiving.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del bon y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, receipt *entity.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Bon de Réception", true).
		WithAuthor(organisme, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(receipt.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(receipt))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título centrado + referencia y fecha.
func headerRow(receipt *entity.Receipt) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BON DE RÉCEPTION / FACTURATION STOCK", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(
				fmt.Sprintf("Référence : %s   |   Date : %s",
					receipt.Reference, receipt.Date.Format("02/01/2006")),
				props.Text{Size: 10, Align: align.Center, Top: 10, Color: colorGray},
			),
		),
	)
}

// partiesRow: organismo, proveedor y receptor.
func partiesRow(receipt *entity.Receipt) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("Organisme : "+organisme, props.Text{Size: 10, Top: 1}),
			text.New("Fournisseur : "+nonEmpty(receipt.Supplier, "—"), props.Text{Size: 10, Top: 7}),
			text.New("Réceptionné par : "+nonEmpty(receipt.Operator, "—"), props.Text{Size: 10, Top: 13}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo azul simulado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		h("Désignation", 5, align.Left),
		h("Qté", 2, align.Center),
		h("Prix Unitaire", 2, align.Right),
		h("Total (DH)", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de recepción.
func tableLineRows(lines []entity.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(8).Add(
			col.New(5).Add(text.New(
				l.Designation,
				props.Text{Size: 10, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 10, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.UnitPrice.StringFixed(2)),
				props.Text{Size: 10, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.Total.StringFixed(2)),
				props.Text{Size: 10, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: TOTAL GÉNÉRAL alineado a la derecha.
func totalRow(receipt *entity.Receipt) core.Row {
	return row.New(12).Add(
		col.New(9).Add(text.New("TOTAL GÉNÉRAL :", props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(receipt.GrandTotal.StringFixed(2))+" DH", props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta espacios de miles en la parte entera de un importe
// "1234567.50" -> "1 234 567.50" (formato francés habitual en DH).
func formatMoney(s string) string {
	intPart, frac := s, ""
	if i := len(s) - 3; i > 0 && s[i] == '.' {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, intPart[i])
	}
	return string(buf) + frac
}
