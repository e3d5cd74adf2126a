package ports

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera el comprobante en PDF de un pago confirmado.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, payment *entity.Payment, explorerURL string) ([]byte, error)
}
