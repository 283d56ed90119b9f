package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/domain"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// ReceiveItem línea solicitada de una recepción: pieza y cantidad recibida.
type ReceiveItem struct {
	PartID   string
	Quantity int64
}

// ReceiveUseCase registra una recepción de proveedor: incrementa el stock
// de cada línea vía el ledger y construye el bon de réception con totales
// exactos (decimal, nada de flotantes en importes).
type ReceiveUseCase struct {
	ledger *ledger.StockLedger
	pdf    ReceiptPDFGenerator
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(l *ledger.StockLedger, pdf ReceiptPDFGenerator) *ReceiveUseCase {
	return &ReceiveUseCase{ledger: l, pdf: pdf}
}

// Receive aplica las entradas en orden y devuelve el bon de réception.
// Cada incremento es una operación confirmada por sí misma: si una línea
// falla, las anteriores quedan aplicadas y el error se propaga sin
// generar documento.
func (uc *ReceiveUseCase) Receive(ctx context.Context, supplier, operator string, items []ReceiveItem) (*entity.Receipt, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now()
	receipt := &entity.Receipt{
		Reference:  "BR-" + now.Format("20060102-150405"),
		Supplier:   supplier,
		Operator:   operator,
		Date:       now,
		Lines:      make([]entity.ReceiptLine, 0, len(items)),
		GrandTotal: decimal.Zero,
	}

	for _, item := range items {
		part, err := uc.ledger.AdjustInbound(ctx, item.PartID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("recepción de %s: %w", item.PartID, err)
		}
		lineTotal := part.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		receipt.Lines = append(receipt.Lines, entity.ReceiptLine{
			PartID:      part.ID,
			Designation: part.Designation,
			Quantity:    item.Quantity,
			UnitPrice:   part.UnitPrice,
			Total:       lineTotal,
		})
		receipt.GrandTotal = receipt.GrandTotal.Add(lineTotal)
	}
	return receipt, nil
}

// ReceiveWithDocument registra la recepción y renderiza el PDF del bon.
func (uc *ReceiveUseCase) ReceiveWithDocument(ctx context.Context, supplier, operator string, items []ReceiveItem) (*entity.Receipt, []byte, error) {
	receipt, err := uc.Receive(ctx, supplier, operator, items)
	if err != nil {
		return nil, nil, err
	}
	doc, err := uc.pdf.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, nil, fmt.Errorf("generar bon de réception: %w", err)
	}
	return receipt, doc, nil
}
