package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/memory"
)

// fakeSigner registra los mensajes y falla con err si está definido.
type fakeSigner struct {
	mu       sync.Mutex
	err      error
	messages []string
}

func (f *fakeSigner) RequestSignature(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	if f.err != nil {
		return "", f.err
	}
	return "0x5f1a9b2c3d4e5f60718293a4b5c6d7e8f9", nil
}

func ptr[T any](v T) *T { return &v }

var ctx = context.Background()

// ─── Catálogo ────────────────────────────────────────────────────────────────

func seedCatalog() *memory.CatalogRepository {
	return memory.NewCatalogRepository([]entity.PublicPolicy{
		{ID: "1", Name: "Premium Life Protection", Category: entity.CategoryLife, Premium: decimal.NewFromInt(45)},
		{ID: "2", Name: "Family Health Plus", Category: entity.CategoryHealth, Premium: decimal.NewFromInt(150)},
		{ID: "3", Name: "Home Shield Elite", Category: entity.CategoryProperty, Premium: decimal.NewFromInt(85)},
	})
}

func TestCatalogList_SinFiltro_RetornaTodasEnOrden(t *testing.T) {
	uc := usecase.NewCatalogUseCase(seedCatalog())

	items, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.NotNil(t, items[0].Features)
}

func TestCatalogList_FiltraPorCategoria(t *testing.T) {
	uc := usecase.NewCatalogUseCase(seedCatalog())

	items, err := uc.List(ctx, "health")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Family Health Plus", items[0].Name)

	items, err = uc.List(ctx, "vehicle")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogGetByID(t *testing.T) {
	uc := usecase.NewCatalogUseCase(seedCatalog())

	p, err := uc.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Home Shield Elite", p.Name)

	_, err = uc.GetByID(ctx, "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Pólizas administrables ──────────────────────────────────────────────────

func seedAdmin() *memory.AdminPolicyRepository {
	return memory.NewAdminPolicyRepository([]entity.AdminPolicy{
		{ID: "1", Name: "Basic Life Insurance", Type: entity.PolicyTypeLife, Coverage: "$100,000", Premium: decimal.NewFromInt(50), Terms: "Term life insurance with 20-year coverage period"},
		{ID: "2", Name: "Comprehensive Health", Type: entity.PolicyTypeHealth, Coverage: "$500,000", Premium: decimal.NewFromInt(150), Terms: "Full coverage health insurance with dental and vision"},
	})
}

func newPolicyRequest() dto.CreateAdminPolicyRequest {
	return dto.CreateAdminPolicyRequest{
		Name:     "Auto Shield",
		Type:     entity.PolicyTypeVehicle,
		Coverage: "$50,000",
		Premium:  decimal.NewFromInt(70),
		Terms:    "Annual vehicle coverage",
	}
}

func TestAdminCreate_FirmaYAgregaAlFinal(t *testing.T) {
	repo := seedAdmin()
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(repo, signer, nil)

	out, err := uc.Create(ctx, newPolicyRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"Add new policy: Auto Shield"}, signer.messages)
	assert.NotEmpty(t, out.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, out.ID, list[2].ID)
}

func TestAdminCreate_IDsUnicosEnAltasSeguidas(t *testing.T) {
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), &fakeSigner{}, nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		out, err := uc.Create(ctx, newPolicyRequest())
		require.NoError(t, err)
		assert.False(t, seen[out.ID], "id repetido %s", out.ID)
		seen[out.ID] = true
	}
}

func TestAdminCreate_FirmaRechazada_NoModificaAlmacen(t *testing.T) {
	repo := seedAdmin()
	uc := usecase.NewAdminPolicyUseCase(repo, &fakeSigner{err: domain.ErrWalletRejected}, nil)

	_, err := uc.Create(ctx, newPolicyRequest())
	assert.ErrorIs(t, err, domain.ErrWalletRejected)

	list, _ := uc.List(ctx)
	assert.Len(t, list, 2)
}

func TestAdminCreate_Invalida_NoPideFirma(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), signer, nil)

	in := newPolicyRequest()
	in.Type = "Pet"
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newPolicyRequest()
	in.Premium = decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, signer.messages)
}

func TestAdminUpdate_AplicaCamposPresentes(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), signer, nil)

	out, err := uc.Update(ctx, "1", dto.UpdateAdminPolicyRequest{Premium: ptr(decimal.NewFromInt(55))})
	require.NoError(t, err)

	assert.Equal(t, []string{"Edit policy: 1"}, signer.messages)
	assert.True(t, out.Premium.Equal(decimal.NewFromInt(55)))
	assert.Equal(t, "Basic Life Insurance", out.Name)
}

func TestAdminUpdate_Inexistente_RetornaNotFoundSinFirma(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), signer, nil)

	_, err := uc.Update(ctx, "99", dto.UpdateAdminPolicyRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, signer.messages)
}

func TestAdminDelete_SinConfirmacion_RetornaConfirmationRequired(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), signer, nil)

	err := uc.Delete(ctx, "1", false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Empty(t, signer.messages)
}

func TestAdminDelete_EliminaSoloEseID(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewAdminPolicyUseCase(seedAdmin(), signer, nil)

	require.NoError(t, uc.Delete(ctx, "1", true))
	assert.Equal(t, []string{"Delete policy: 1"}, signer.messages)

	list, _ := uc.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)

	assert.ErrorIs(t, uc.Delete(ctx, "1", true), domain.ErrNotFound)
}

// ─── Pólizas de cliente ──────────────────────────────────────────────────────

func seedCustomer() *memory.CustomerPolicyRepository {
	return memory.NewCustomerPolicyRepository([]entity.CustomerPolicy{
		{ID: "1", CustomerName: "John Doe", PolicyName: "Basic Life Insurance", Status: entity.CustomerPolicyActive,
			StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Premium: decimal.NewFromInt(50),
			NextPayment: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "2", CustomerName: "Jane Smith", PolicyName: "Comprehensive Health", Status: entity.CustomerPolicyClaimed,
			StartDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), Premium: decimal.NewFromInt(150),
			NextPayment: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
}

func validClaim() dto.ClaimRequest {
	return dto.ClaimRequest{ClaimAmount: decimal.NewFromInt(1200), Reason: "Hospitalización", Description: "Ingreso por urgencias"}
}

func TestCustomerList_FormateaFechas(t *testing.T) {
	uc := usecase.NewCustomerPolicyUseCase(seedCustomer(), &fakeSigner{}, nil)

	items, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-15", items[0].StartDate)
	assert.Equal(t, "2024-03-15", items[0].NextPayment)
	assert.Equal(t, "claimed", items[1].Status)
}

func TestFileClaim_MarcaComoClaimed(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewCustomerPolicyUseCase(seedCustomer(), signer, nil)

	out, err := uc.FileClaim(ctx, "1", validClaim())
	require.NoError(t, err)
	assert.Equal(t, "claimed", out.Status)
	assert.Equal(t, []string{"Process claim for policy: 1"}, signer.messages)

	_, err = uc.FileClaim(ctx, "1", validClaim())
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
}

func TestFileClaim_YaReclamada_NoPideFirma(t *testing.T) {
	signer := &fakeSigner{}
	uc := usecase.NewCustomerPolicyUseCase(seedCustomer(), signer, nil)

	_, err := uc.FileClaim(ctx, "2", validClaim())
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	assert.Empty(t, signer.messages)
}

func TestFileClaim_FirmaFallida_EstadoSinCambios(t *testing.T) {
	repo := seedCustomer()
	uc := usecase.NewCustomerPolicyUseCase(repo, &fakeSigner{err: domain.ErrWalletUnavailable}, nil)

	_, err := uc.FileClaim(ctx, "1", validClaim())
	assert.ErrorIs(t, err, domain.ErrWalletUnavailable)

	p, _ := repo.GetByID(ctx, "1")
	assert.Equal(t, entity.CustomerPolicyActive, p.Status)
}

func TestFileClaim_Validaciones(t *testing.T) {
	uc := usecase.NewCustomerPolicyUseCase(seedCustomer(), &fakeSigner{}, nil)

	c := validClaim()
	c.ClaimAmount = decimal.Zero
	_, err := uc.FileClaim(ctx, "1", c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.FileClaim(ctx, "99", validClaim())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Pagos ───────────────────────────────────────────────────────────────────

type fakePDF struct {
	err         error
	explorerURL string
}

func (f *fakePDF) GenerateReceiptPDF(ctx context.Context, p *entity.Payment, explorerURL string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.explorerURL = explorerURL
	return []byte("%PDF-1.4"), nil
}

func seedPayments(t *testing.T) *memory.PaymentRepository {
	t.Helper()
	repo := memory.NewPaymentRepository()
	require.NoError(t, repo.Create(ctx, &entity.Payment{
		ID:         "p1",
		PolicyName: "Premium Life Protection",
		PremiumUSD: decimal.NewFromInt(45),
		ValueWei:   decimal.RequireFromString("22500000000000000"),
		TxHash:     "0x1234567890abcdef1234567890abcdef",
	}))
	return repo
}

func TestGetPayment_ArmaHashCortoYEnlace(t *testing.T) {
	uc := usecase.NewPaymentUseCase(seedPayments(t), &fakePDF{}, "https://etherscan.io/tx/%s")

	out, err := uc.GetPayment(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "0x1234...cdef", out.ShortTxHash)
	assert.Equal(t, "https://etherscan.io/tx/0x1234567890abcdef1234567890abcdef", out.ExplorerURL)
	assert.Equal(t, "0.0225", out.ValueETH)

	_, err = uc.GetPayment(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiptPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc := usecase.NewPaymentUseCase(seedPayments(t), pdf, "https://etherscan.io/tx/%s")

	data, name, err := uc.ReceiptPDF(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "recibo-p1.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "https://etherscan.io/tx/0x1234567890abcdef1234567890abcdef", pdf.explorerURL)

	pdf.err = errors.New("maroto")
	_, _, err = uc.ReceiptPDF(ctx, "p1")
	assert.Error(t, err)
}
