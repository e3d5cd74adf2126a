// Package enrollment implementa el flujo de solicitud de una póliza del catálogo:
//
//	browsing → application_form → otp_verification → checkout → paid
package enrollment

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
	"github.com/jhoicas/bancassurance-api/pkg/metrics"
)

// OTPLength cantidad de dígitos de cada código.
const OTPLength = 6

// Config parámetros del flujo.
type Config struct {
	OTPBypass     bool          // acepta cualquier par de códigos de 6 caracteres
	OTPTTL        time.Duration // vigencia de los códigos
	ExplorerTxURL string        // plantilla del explorador para la respuesta de pago
}

// UseCase orquesta las solicitudes de póliza. Las transiciones de una misma solicitud se serializan.
type UseCase struct {
	catalog  repository.CatalogRepository
	apps     repository.ApplicationRepository
	payments repository.PaymentRepository
	wallet   ports.PaymentSender
	notifier ports.OTPNotifier
	cfg      Config
	log      *logger.Logger

	now      func() time.Time
	newID    func() string
	generate func() (string, error)
	hashCost int

	locks sync.Map // id de solicitud → *sync.Mutex
}

// New construye el caso de uso.
func New(
	catalog repository.CatalogRepository,
	apps repository.ApplicationRepository,
	payments repository.PaymentRepository,
	wallet ports.PaymentSender,
	notifier ports.OTPNotifier,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 10 * time.Minute
	}
	return &UseCase{
		catalog:  catalog,
		apps:     apps,
		payments: payments,
		wallet:   wallet,
		notifier: notifier,
		cfg:      cfg,
		log:      log.Component("enrollment"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		generate: GenerateOTP,
		hashCost: bcrypt.DefaultCost,
	}
}

// GenerateOTP devuelve un código numérico aleatorio de OTPLength dígitos (crypto/rand).
func GenerateOTP() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// acquire toma el candado de una solicitud existente y devuelve su estado vigente.
// Los ids desconocidos no dejan candado; el candado se descarta cuando la solicitud queda en paid.
func (uc *UseCase) acquire(ctx context.Context, id string) (*entity.PolicyApplication, func(), error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, nil, err
	}
	m, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	app, err := uc.load(ctx, id)
	if err != nil {
		mu.Unlock()
		return nil, nil, err
	}
	release := func() {
		if app.Stage == entity.StagePaid {
			uc.locks.Delete(id)
		}
		mu.Unlock()
	}
	return app, release, nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.PolicyApplication, error) {
	app, err := uc.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

func (uc *UseCase) save(ctx context.Context, app *entity.PolicyApplication) (*dto.ApplicationResponse, error) {
	if err := uc.apps.Save(ctx, app); err != nil {
		return nil, err
	}
	metrics.RecordStage(string(app.Stage))
	uc.log.Debug().Str("application_id", app.ID).Str("stage", string(app.Stage)).Msg("etapa de solicitud")
	return ToApplicationResponse(app), nil
}

// Start crea una solicitud en browsing para una póliza existente del catálogo.
func (uc *UseCase) Start(ctx context.Context, policyID string) (*dto.ApplicationResponse, error) {
	policy, err := uc.catalog.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: póliza %s", domain.ErrNotFound, policyID)
	}
	app := entity.NewPolicyApplication(uc.newID(), policy.ID, uc.now())
	return uc.save(ctx, app)
}

// Get devuelve el estado de una solicitud.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ApplicationResponse, error) {
	app, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToApplicationResponse(app), nil
}

// OpenForm browsing → application_form.
func (uc *UseCase) OpenForm(ctx context.Context, id string) (*dto.ApplicationResponse, error) {
	app, release, err := uc.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := app.OpenForm(uc.now()); err != nil {
		return nil, err
	}
	return uc.save(ctx, app)
}

// SubmitForm valida el formulario, genera y entrega los códigos de email y teléfono, y pasa a otp_verification.
// Si la entrega falla la solicitud no cambia.
func (uc *UseCase) SubmitForm(ctx context.Context, id string, in dto.ApplicationFormRequest) (*dto.ApplicationResponse, error) {
	app, release, err := uc.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()
	if app.Stage != entity.StageApplicationForm {
		return nil, fmt.Errorf("%w: etapa actual %s", domain.ErrInvalidStage, app.Stage)
	}
	form := toApplicationForm(in)
	if err := form.Validate(); err != nil {
		return nil, err
	}

	emailCode, err := uc.generate()
	if err != nil {
		return nil, fmt.Errorf("generar código de email: %w", err)
	}
	phoneCode, err := uc.generate()
	if err != nil {
		return nil, fmt.Errorf("generar código de teléfono: %w", err)
	}
	emailHash, err := bcrypt.GenerateFromPassword([]byte(emailCode), uc.hashCost)
	if err != nil {
		return nil, err
	}
	phoneHash, err := bcrypt.GenerateFromPassword([]byte(phoneCode), uc.hashCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := app.SubmitForm(form, emailHash, phoneHash, now.Add(uc.cfg.OTPTTL), now); err != nil {
		return nil, err
	}
	if err := uc.notifier.SendCodes(ctx, app, emailCode, phoneCode); err != nil {
		return nil, fmt.Errorf("enviar códigos de verificación: %w", err)
	}
	return uc.save(ctx, app)
}

// VerifyOTP compara los códigos con los hashes vigentes y pasa a checkout.
// Con OTPBypass cualquier par de códigos de 6 caracteres es válido.
func (uc *UseCase) VerifyOTP(ctx context.Context, id string, in dto.VerifyOTPRequest) (*dto.ApplicationResponse, error) {
	app, release, err := uc.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()
	if app.Stage != entity.StageOTPVerification {
		return nil, fmt.Errorf("%w: etapa actual %s", domain.ErrInvalidStage, app.Stage)
	}
	if utf8.RuneCountInString(in.EmailOTP) != OTPLength || utf8.RuneCountInString(in.PhoneOTP) != OTPLength {
		return nil, fmt.Errorf("%w: los códigos deben tener %d caracteres", domain.ErrOTPMismatch, OTPLength)
	}

	now := uc.now()
	if !uc.cfg.OTPBypass {
		if !now.Before(app.OTPExpiresAt) {
			return nil, domain.ErrOTPExpired
		}
		if bcrypt.CompareHashAndPassword(app.EmailOTPHash, []byte(in.EmailOTP)) != nil ||
			bcrypt.CompareHashAndPassword(app.PhoneOTPHash, []byte(in.PhoneOTP)) != nil {
			uc.log.Warn().Str("application_id", id).Msg("códigos de verificación incorrectos")
			return nil, domain.ErrOTPMismatch
		}
	}

	if err := app.MarkVerified(now); err != nil {
		return nil, err
	}
	return uc.save(ctx, app)
}

// Cancel vuelve a browsing desde cualquier etapa salvo paid.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.ApplicationResponse, error) {
	app, release, err := uc.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()
	if err := app.Cancel(uc.now()); err != nil {
		return nil, err
	}
	return uc.save(ctx, app)
}

// Pay envía la prima de la póliza desde la billetera conectada, registra el pago y pasa a paid.
// Sin billetera conectada devuelve ErrWalletNotConnected sin contactar al proveedor.
func (uc *UseCase) Pay(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	app, release, err := uc.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()
	if app.Stage != entity.StageCheckout {
		return nil, fmt.Errorf("%w: etapa actual %s", domain.ErrInvalidStage, app.Stage)
	}
	if !uc.wallet.Connected() {
		return nil, domain.ErrWalletNotConnected
	}
	policy, err := uc.catalog.GetByID(ctx, app.PolicyID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: póliza %s", domain.ErrNotFound, app.PolicyID)
	}

	receipt, err := uc.wallet.SendPayment(ctx, policy.Premium)
	if err != nil {
		return nil, fmt.Errorf("pago de la prima: %w", err)
	}

	now := uc.now()
	payment := &entity.Payment{
		ID:            uc.newID(),
		ApplicationID: app.ID,
		PolicyID:      policy.ID,
		PolicyName:    policy.Name,
		PremiumUSD:    policy.Premium,
		ValueWei:      receipt.ValueWei,
		From:          receipt.From,
		To:            receipt.To,
		TxHash:        receipt.Hash,
		CreatedAt:     now,
	}
	if err := uc.payments.Create(ctx, payment); err != nil {
		// la transacción ya salió: se registra para conciliación manual
		uc.log.Error().Err(err).Str("tx_hash", receipt.Hash).Str("application_id", app.ID).Msg("pago enviado pero no registrado")
		return nil, err
	}
	if err := app.MarkPaid(payment.ID, now); err != nil {
		return nil, err
	}
	if _, err := uc.save(ctx, app); err != nil {
		return nil, err
	}

	premium, _ := policy.Premium.Float64()
	metrics.RecordPremiumPaid(premium)
	uc.log.Info().
		Str("application_id", app.ID).
		Str("payment_id", payment.ID).
		Str("tx_hash", payment.TxHash).
		Msg("prima pagada")

	out := usecase.ToPaymentResponse(payment, uc.cfg.ExplorerTxURL)
	return &out, nil
}

func toApplicationForm(in dto.ApplicationFormRequest) entity.ApplicationForm {
	return entity.ApplicationForm{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
	}
}

// ToApplicationResponse mapea la solicitud sin exponer los hashes de los códigos.
func ToApplicationResponse(a *entity.PolicyApplication) *dto.ApplicationResponse {
	out := &dto.ApplicationResponse{
		ID:            a.ID,
		PolicyID:      a.PolicyID,
		Stage:         string(a.Stage),
		EmailVerified: a.EmailVerified,
		PhoneVerified: a.PhoneVerified,
		PaymentID:     a.PaymentID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Form != nil {
		out.Form = &dto.ApplicationFormRequest{
			FirstName:   a.Form.FirstName,
			LastName:    a.Form.LastName,
			Email:       a.Form.Email,
			Phone:       a.Form.Phone,
			DateOfBirth: a.Form.DateOfBirth,
			Address:     a.Form.Address,
			City:        a.Form.City,
			Country:     a.Form.Country,
		}
	}
	if a.Stage == entity.StageOTPVerification && !a.OTPExpiresAt.IsZero() {
		exp := a.OTPExpiresAt
		out.OTPExpiresAt = &exp
	}
	return out
}
