package receiving

import (
	"context"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
)

// ReceiptPDFGenerator renderiza el bon de réception a un documento PDF de
// una página. La maquetación es responsabilidad de la infraestructura; el
// caso de uso solo garantiza totales exactos.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error)
}
