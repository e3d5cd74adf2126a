package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/bancassurance-api/internal/domain"
)

// ApplicationStage etapa del flujo de solicitud de una póliza.
//
//	browsing → application_form → otp_verification → checkout → paid
//
// Cancel regresa a browsing desde cualquier etapa excepto paid.
type ApplicationStage string

const (
	StageBrowsing        ApplicationStage = "browsing"
	StageApplicationForm ApplicationStage = "application_form"
	StageOTPVerification ApplicationStage = "otp_verification"
	StageCheckout        ApplicationStage = "checkout"
	StagePaid            ApplicationStage = "paid"
)

// ApplicationForm datos personales del solicitante. Un campo por cada input del formulario.
type ApplicationForm struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth string // YYYY-MM-DD
	Address     string
	City        string
	Country     string
}

// Validate exige todos los campos, un email válido y fecha de nacimiento YYYY-MM-DD.
func (f ApplicationForm) Validate() error {
	required := []struct{ name, value string }{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"date_of_birth", f.DateOfBirth},
		{"address", f.Address},
		{"city", f.City},
		{"country", f.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, r.name)
		}
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", f.DateOfBirth); err != nil {
		return fmt.Errorf("%w: date_of_birth debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

// PolicyApplication solicitud de un cliente sobre una póliza del catálogo.
// Los OTP se guardan solo como hash bcrypt.
type PolicyApplication struct {
	ID            string
	PolicyID      string
	Stage         ApplicationStage
	Form          *ApplicationForm
	EmailOTPHash  []byte
	PhoneOTPHash  []byte
	OTPExpiresAt  time.Time
	EmailVerified bool
	PhoneVerified bool
	PaymentID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPolicyApplication crea una solicitud en etapa browsing.
func NewPolicyApplication(id, policyID string, now time.Time) *PolicyApplication {
	return &PolicyApplication{
		ID:        id,
		PolicyID:  policyID,
		Stage:     StageBrowsing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *PolicyApplication) requireStage(s ApplicationStage) error {
	if a.Stage != s {
		return fmt.Errorf("%w: etapa actual %s, se esperaba %s", domain.ErrInvalidStage, a.Stage, s)
	}
	return nil
}

// OpenForm browsing → application_form.
func (a *PolicyApplication) OpenForm(now time.Time) error {
	if err := a.requireStage(StageBrowsing); err != nil {
		return err
	}
	a.Stage = StageApplicationForm
	a.UpdatedAt = now
	return nil
}

// SubmitForm application_form → otp_verification. Guarda el formulario y los hashes de los códigos.
func (a *PolicyApplication) SubmitForm(form ApplicationForm, emailOTPHash, phoneOTPHash []byte, expiresAt, now time.Time) error {
	if err := a.requireStage(StageApplicationForm); err != nil {
		return err
	}
	a.Form = &form
	a.EmailOTPHash = emailOTPHash
	a.PhoneOTPHash = phoneOTPHash
	a.OTPExpiresAt = expiresAt
	a.Stage = StageOTPVerification
	a.UpdatedAt = now
	return nil
}

// MarkVerified otp_verification → checkout.
func (a *PolicyApplication) MarkVerified(now time.Time) error {
	if err := a.requireStage(StageOTPVerification); err != nil {
		return err
	}
	a.EmailVerified = true
	a.PhoneVerified = true
	a.EmailOTPHash = nil
	a.PhoneOTPHash = nil
	a.Stage = StageCheckout
	a.UpdatedAt = now
	return nil
}

// MarkPaid checkout → paid.
func (a *PolicyApplication) MarkPaid(paymentID string, now time.Time) error {
	if err := a.requireStage(StageCheckout); err != nil {
		return err
	}
	a.PaymentID = paymentID
	a.Stage = StagePaid
	a.UpdatedAt = now
	return nil
}

// Cancel vuelve a browsing y descarta formulario y códigos. No aplica sobre una solicitud pagada.
func (a *PolicyApplication) Cancel(now time.Time) error {
	if a.Stage == StagePaid {
		return fmt.Errorf("%w: la solicitud ya fue pagada", domain.ErrInvalidStage)
	}
	a.Stage = StageBrowsing
	a.Form = nil
	a.EmailOTPHash = nil
	a.PhoneOTPHash = nil
	a.OTPExpiresAt = time.Time{}
	a.EmailVerified = false
	a.PhoneVerified = false
	a.UpdatedAt = now
	return nil
}
