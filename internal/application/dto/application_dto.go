package dto

import "time"

// StartApplicationRequest inicia una solicitud sobre una póliza del catálogo.
type StartApplicationRequest struct {
	PolicyID string `json:"policy_id" validate:"required"`
}

// ApplicationFormRequest datos personales del solicitante.
type ApplicationFormRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

// VerifyOTPRequest códigos recibidos por email y por teléfono.
type VerifyOTPRequest struct {
	EmailOTP string `json:"email_otp" validate:"required,len=6"`
	PhoneOTP string `json:"phone_otp" validate:"required,len=6"`
}

// ApplicationResponse estado de una solicitud. Nunca incluye los códigos ni sus hashes.
type ApplicationResponse struct {
	ID            string                  `json:"id"`
	PolicyID      string                  `json:"policy_id"`
	Stage         string                  `json:"stage"`
	Form          *ApplicationFormRequest `json:"form,omitempty"`
	EmailVerified bool                    `json:"email_verified"`
	PhoneVerified bool                    `json:"phone_verified"`
	OTPExpiresAt  *time.Time              `json:"otp_expires_at,omitempty"`
	PaymentID     string                  `json:"payment_id,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
