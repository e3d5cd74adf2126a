package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/pkg/ether"
)

// PaymentUseCase confirmación de pago: vista del comprobante y PDF.
type PaymentUseCase struct {
	repo        repository.PaymentRepository
	pdf         ports.ReceiptPDFGenerator
	explorerURL string // plantilla con %s
}

// NewPaymentUseCase construye el caso de uso. explorerURL es la plantilla del explorador (ej. https://etherscan.io/tx/%s).
func NewPaymentUseCase(repo repository.PaymentRepository, pdf ports.ReceiptPDFGenerator, explorerURL string) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, pdf: pdf, explorerURL: explorerURL}
}

// GetPayment devuelve el comprobante. ErrNotFound si no existe.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToPaymentResponse(p, uc.explorerURL)
	return &out, nil
}

// ReceiptPDF genera el PDF del comprobante y un nombre de archivo sugerido.
func (uc *PaymentUseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, string, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateReceiptPDF(ctx, p, ExplorerURL(uc.explorerURL, p.TxHash))
	if err != nil {
		return nil, "", fmt.Errorf("generar recibo: %w", err)
	}
	return data, fmt.Sprintf("recibo-%s.pdf", p.ID), nil
}

func (uc *PaymentUseCase) get(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ExplorerURL arma el enlace al explorador de bloques para un hash.
func ExplorerURL(template, hash string) string {
	return fmt.Sprintf(template, hash)
}

// ToPaymentResponse mapea el pago con hash corto, valor en ETH y enlace al explorador.
func ToPaymentResponse(p *entity.Payment, explorerTemplate string) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		ApplicationID: p.ApplicationID,
		PolicyID:      p.PolicyID,
		PolicyName:    p.PolicyName,
		PremiumUSD:    p.PremiumUSD,
		ValueWei:      p.ValueWei.String(),
		ValueETH:      ether.FormatEther(p.ValueWei),
		From:          p.From,
		To:            p.To,
		TxHash:        p.TxHash,
		ShortTxHash:   entity.ShortHash(p.TxHash),
		ExplorerURL:   ExplorerURL(explorerTemplate, p.TxHash),
		CreatedAt:     p.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
