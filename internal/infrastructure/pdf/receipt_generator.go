// Package pdf genera el comprobante de pago de una prima en PDF (A4, una página).
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de pago     │  N° pago + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PÓLIZA: nombre + prima mensual en USD                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRANSACCIÓN: hash / origen / destino / valor en ETH         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al explorador + enlace                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/pkg/ether"
)

var _ ports.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa ports.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	issuer  string
	printer *message.Printer
}

// NewMarotoReceiptGenerator construye el generador. issuer aparece como autor del documento.
func NewMarotoReceiptGenerator(issuer string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{issuer: issuer, printer: message.NewPrinter(language.AmericanEnglish)}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, p *entity.Payment, explorerURL string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(policyRow(p, g.FormatUSD(p.PremiumUSD)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(transactionRows(p)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(explorerURL)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// FormatUSD formatea un monto en dólares con separador de miles: 1500 → "US$ 1,500.00".
func (g *MarotoReceiptGenerator) FormatUSD(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return g.printer.Sprintf("US$ %.2f", f)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Payment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pago de prima con billetera", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+p.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+p.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func policyRow(p *entity.Payment, premium string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PÓLIZA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.PolicyName, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Prima mensual", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(premium, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func transactionRows(p *entity.Payment) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(value, props.Text{Size: 8, Top: 1, Color: colorGray})),
		)
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("TRANSACCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		field("Hash:", p.TxHash),
		field("Origen:", p.From),
		field("Destino:", p.To),
		field("Valor:", ether.FormatEther(p.ValueWei)+" ETH"),
	}
}

func footerRows(explorerURL string) []core.Row {
	if explorerURL == "" {
		return nil
	}
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(explorerURL, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Escanea el código QR para ver la\ntransacción en el explorador de bloques.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New(explorerURL, props.Text{Size: 7, Top: 18, Left: 3, Color: colorPrimary}),
			),
		),
	}
}
