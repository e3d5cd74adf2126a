package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/pdf"
)

func TestGenerateReceiptPDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("bancassurance-api")
	p := &entity.Payment{
		ID:         "p1",
		PolicyName: "Premium Life Protection",
		PremiumUSD: decimal.NewFromInt(45),
		ValueWei:   decimal.RequireFromString("22500000000000000"),
		From:       "0x1234567890123456789012345678901234567890",
		To:         "0x2345678901234567890123456789012345678901",
		TxHash:     "0xabcdef",
		CreatedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := g.GenerateReceiptPDF(context.Background(), p, "https://etherscan.io/tx/0xabcdef")
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFormatUSD(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("x")
	assert.Equal(t, "US$ 45.00", g.FormatUSD(decimal.NewFromInt(45)))
	assert.Equal(t, "US$ 1,500.50", g.FormatUSD(decimal.RequireFromString("1500.5")))
}
