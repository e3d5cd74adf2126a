package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/internal/application/auth"
	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/enrollment"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
	"github.com/jhoicas/bancassurance-api/internal/application/wallet"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/memory"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bancassurance-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/bancassurance-api/internal/interfaces/http"
)

const (
	walletAccount = "0x1234567890123456789012345678901234567890"
	walletDest    = "0x2345678901234567890123456789012345678901"
	txHash        = "0xabcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type stubWallet struct {
	mu       sync.Mutex
	signErr  error
	messages []string
	sent     []ports.WalletTx
}

func (w *stubWallet) RequestAccounts(context.Context) ([]string, error) {
	return []string{walletAccount}, nil
}

func (w *stubWallet) SignMessage(_ context.Context, _, message string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.signErr != nil {
		return "", w.signErr
	}
	w.messages = append(w.messages, message)
	return "0x5f3a9b7c1d2e4f6a8b0c2d4e6f8a0b2c4d6e8f0a2b4c6d8e0f2a4b6c8d0e2f4a1b", nil
}

func (w *stubWallet) SendTransaction(_ context.Context, tx ports.WalletTx) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, tx)
	return txHash, nil
}

func (w *stubWallet) signed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.messages...)
}

// captureNotifier guarda los últimos códigos enviados.
type captureNotifier struct {
	mu       sync.Mutex
	emailOTP string
	phoneOTP string
}

func (n *captureNotifier) SendCodes(_ context.Context, _ *entity.PolicyApplication, emailCode, phoneCode string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emailOTP, n.phoneOTP = emailCode, phoneCode
	return nil
}

func (n *captureNotifier) codes() (string, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.emailOTP, n.phoneOTP
}

type testServer struct {
	app      *fiber.App
	wallet   *stubWallet
	notifier *captureNotifier
}

func newTestServer(t *testing.T, provider ports.WalletProvider) *testServer {
	t.Helper()
	data, err := seed.Default()
	require.NoError(t, err)

	stub, _ := provider.(*stubWallet)
	notifier := &captureNotifier{}

	gw := wallet.NewGateway(provider, wallet.Config{
		Destination: walletDest,
		USDPerETH:   decimal.NewFromInt(2000),
		Timeout:     5 * time.Second,
	}, nil)

	catalogRepo := memory.NewCatalogRepository(data.Catalog)
	paymentRepo := memory.NewPaymentRepository()
	authUC := auth.NewAuthUseCase(
		memory.NewEmployeeRepository(data.Employees),
		memory.NewSessionRepository(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		nil,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		CatalogUC:        usecase.NewCatalogUseCase(catalogRepo),
		AdminPolicyUC:    usecase.NewAdminPolicyUseCase(memory.NewAdminPolicyRepository(data.AdminPolicies), gw, nil),
		CustomerPolicyUC: usecase.NewCustomerPolicyUseCase(memory.NewCustomerPolicyRepository(data.CustomerPolicies), gw, nil),
		PaymentUC:        usecase.NewPaymentUseCase(paymentRepo, pdf.NewMarotoReceiptGenerator("Bancassurance Marketplace"), "https://etherscan.io/tx/%s"),
		Enrollment: enrollment.New(catalogRepo, memory.NewApplicationRepository(), paymentRepo, gw, notifier,
			enrollment.Config{OTPTTL: 10 * time.Minute, ExplorerTxURL: "https://etherscan.io/tx/%s"}, nil),
		Wallet:       gw,
		LoginLimiter: apphttp.NewIPRateLimiter(0, 1),
		JWTSecret:    testJWTSecret,
	})
	return &testServer{app: app, wallet: stub, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

func (s *testServer) login(t *testing.T, portal, username, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/"+portal+"/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Aseguradora_DevuelvePanel(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	resp := s.do(t, http.MethodPost, "/api/auth/insurance/login", "", dto.LoginRequest{Username: "insurance_admin1", Password: "ins123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "/insurance-dashboard", out.Dashboard)
	assert.Equal(t, "John Smith", out.Employee.Name)
}

func TestLogin_CuentaBancoEnPortalAseguradora_Retorna401(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	resp := s.do(t, http.MethodPost, "/api/auth/insurance/login", "", dto.LoginRequest{Username: "bank_admin1", Password: "bank123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestLogin_SinCampos_Retorna400(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	resp := s.do(t, http.MethodPost, "/api/auth/bank/login", "", dto.LoginRequest{Username: "bank_admin1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestLogout_RevocaToken(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	token := s.login(t, "bank", "bank_admin1", "bank123")

	resp := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bank_admin1", decode[dto.EmployeeResponse](t, resp).Username)

	resp = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogo_FiltroPorCategoria(t *testing.T) {
	s := newTestServer(t, &stubWallet{})

	all := decode[dto.ListResponse[dto.PublicPolicyResponse]](t, s.do(t, http.MethodGet, "/api/policies", "", nil))
	assert.Equal(t, 3, all.Total)

	life := decode[dto.ListResponse[dto.PublicPolicyResponse]](t, s.do(t, http.MethodGet, "/api/policies?category=life", "", nil))
	require.Equal(t, 1, life.Total)
	assert.Equal(t, "Premium Life Protection", life.Items[0].Name)

	none := decode[dto.ListResponse[dto.PublicPolicyResponse]](t, s.do(t, http.MethodGet, "/api/policies?category=auto", "", nil))
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Items)
}

func TestCatalogo_Inexistente_Retorna404(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	resp := s.do(t, http.MethodGet, "/api/policies/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel de la aseguradora
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_CrearEditarEliminar(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	token := s.login(t, "insurance", "insurance_admin1", "ins123")

	resp := s.do(t, http.MethodPost, "/api/admin/policies", token, dto.CreateAdminPolicyRequest{
		Name: "Auto Basic", Type: "Vehicle", Coverage: "$25,000", Premium: decimal.NewFromInt(80), Terms: "Cobertura anual",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.AdminPolicyResponse](t, resp)
	assert.Equal(t, "Auto Basic", created.Name)

	name := "Auto Plus"
	resp = s.do(t, http.MethodPut, "/api/admin/policies/"+created.ID, token, dto.UpdateAdminPolicyRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.AdminPolicyResponse](t, resp)
	assert.Equal(t, "Auto Plus", updated.Name)
	assert.Equal(t, "Vehicle", updated.Type)

	resp = s.do(t, http.MethodDelete, "/api/admin/policies/"+created.ID, token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", errorCode(t, resp))

	resp = s.do(t, http.MethodDelete, "/api/admin/policies/"+created.ID+"?confirm=true", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	list := decode[dto.ListResponse[dto.AdminPolicyResponse]](t, s.do(t, http.MethodGet, "/api/admin/policies", token, nil))
	assert.Equal(t, 2, list.Total)

	assert.Equal(t, []string{
		"Add new policy: Auto Basic",
		"Edit policy: " + created.ID,
		"Delete policy: " + created.ID,
	}, s.wallet.signed())
}

func TestAdmin_FirmaRechazada_NoCambiaNada(t *testing.T) {
	s := newTestServer(t, &stubWallet{signErr: domain.ErrWalletRejected})
	token := s.login(t, "insurance", "insurance_admin1", "ins123")

	resp := s.do(t, http.MethodPost, "/api/admin/policies", token, dto.CreateAdminPolicyRequest{
		Name: "Auto Basic", Type: "Vehicle", Coverage: "$25,000", Premium: decimal.NewFromInt(80), Terms: "Cobertura anual",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "WALLET_REJECTED", errorCode(t, resp))

	list := decode[dto.ListResponse[dto.AdminPolicyResponse]](t, s.do(t, http.MethodGet, "/api/admin/policies", token, nil))
	assert.Equal(t, 2, list.Total)
}

func TestAdmin_RolBanco_Retorna403(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	token := s.login(t, "bank", "bank_admin1", "bank123")

	resp := s.do(t, http.MethodGet, "/api/admin/policies", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdmin_SinBilletera_Retorna503(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.login(t, "insurance", "insurance_admin1", "ins123")

	resp := s.do(t, http.MethodPost, "/api/admin/policies", token, dto.CreateAdminPolicyRequest{
		Name: "Auto Basic", Type: "Vehicle", Coverage: "$25,000", Premium: decimal.NewFromInt(80), Terms: "Cobertura anual",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "WALLET_UNAVAILABLE", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel del banco
// ──────────────────────────────────────────────────────────────────────────────

func TestBanco_ReclamoMarcaClaimed(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	token := s.login(t, "bank", "bank_admin1", "bank123")

	claim := dto.ClaimRequest{ClaimAmount: decimal.NewFromInt(1000), Reason: "Accidente", Description: "Hospitalización"}
	resp := s.do(t, http.MethodPost, "/api/bank/customer-policies/1/claims", token, claim)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(entity.CustomerPolicyClaimed), decode[dto.CustomerPolicyResponse](t, resp).Status)

	resp = s.do(t, http.MethodPost, "/api/bank/customer-policies/1/claims", token, claim)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_CLAIMED", errorCode(t, resp))

	assert.Equal(t, []string{"Process claim for policy: 1"}, s.wallet.signed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitud y pago
// ──────────────────────────────────────────────────────────────────────────────

func TestSolicitud_FlujoCompletoConPago(t *testing.T) {
	s := newTestServer(t, &stubWallet{})

	resp := s.do(t, http.MethodPost, "/api/applications", "", dto.StartApplicationRequest{PolicyID: "1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	app := decode[dto.ApplicationResponse](t, resp)
	assert.Equal(t, string(entity.StageBrowsing), app.Stage)
	base := "/api/applications/" + app.ID

	// Pagar fuera de orden
	resp = s.do(t, http.MethodPost, base+"/pay", "", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STAGE", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, base+"/form/open", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, base+"/form", "", dto.ApplicationFormRequest{
		FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com", Phone: "+573001112233",
		DateOfBirth: "1990-05-10", Address: "Calle 1", City: "Bogotá", Country: "Colombia",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(entity.StageOTPVerification), decode[dto.ApplicationResponse](t, resp).Stage)

	// Los códigos generados son numéricos: "abcdef" nunca coincide.
	resp = s.do(t, http.MethodPost, base+"/otp", "", dto.VerifyOTPRequest{EmailOTP: "abcdef", PhoneOTP: "abcdef"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "OTP_INVALID", errorCode(t, resp))

	email, phone := s.notifier.codes()
	resp = s.do(t, http.MethodPost, base+"/otp", "", dto.VerifyOTPRequest{EmailOTP: email, PhoneOTP: phone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(entity.StageCheckout), decode[dto.ApplicationResponse](t, resp).Stage)

	// Sin billetera conectada
	resp = s.do(t, http.MethodPost, base+"/pay", "", nil)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	assert.Equal(t, "WALLET_NOT_CONNECTED", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/wallet/connect", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[dto.WalletStatusResponse](t, resp)
	assert.True(t, status.Connected)
	assert.Equal(t, "0x1234...7890", status.ShortAccount)

	resp = s.do(t, http.MethodPost, base+"/pay", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payment := decode[dto.PaymentResponse](t, resp)
	assert.Equal(t, txHash, payment.TxHash)
	assert.Equal(t, "0xabcd...6789", payment.ShortTxHash)
	assert.Equal(t, "https://etherscan.io/tx/"+txHash, payment.ExplorerURL)
	assert.Equal(t, "22500000000000000", payment.ValueWei)

	app = decode[dto.ApplicationResponse](t, s.do(t, http.MethodGet, base, "", nil))
	assert.Equal(t, string(entity.StagePaid), app.Stage)
	assert.Equal(t, payment.ID, app.PaymentID)

	got := decode[dto.PaymentResponse](t, s.do(t, http.MethodGet, "/api/payments/"+payment.ID, "", nil))
	assert.Equal(t, payment.TxHash, got.TxHash)

	resp = s.do(t, http.MethodGet, "/api/payments/"+payment.ID+"/receipt", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestSolicitud_Cancelar_VuelveABrowsing(t *testing.T) {
	s := newTestServer(t, &stubWallet{})

	app := decode[dto.ApplicationResponse](t, s.do(t, http.MethodPost, "/api/applications", "", dto.StartApplicationRequest{PolicyID: "2"}))
	base := "/api/applications/" + app.ID

	resp := s.do(t, http.MethodPost, base+"/form/open", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, base+"/cancel", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ApplicationResponse](t, resp)
	assert.Equal(t, string(entity.StageBrowsing), out.Stage)
	assert.Nil(t, out.Form)
}

func TestSolicitud_PolizaInexistente_Retorna404(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	resp := s.do(t, http.MethodPost, "/api/applications", "", dto.StartApplicationRequest{PolicyID: "99"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBilletera_EstadoInicialDesconectada(t *testing.T) {
	s := newTestServer(t, &stubWallet{})
	status := decode[dto.WalletStatusResponse](t, s.do(t, http.MethodGet, "/api/wallet", "", nil))
	assert.False(t, status.Connected)
	assert.Empty(t, status.Account)
}
