package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdminPolicyRequest entrada para crear una póliza desde el panel de la aseguradora.
type CreateAdminPolicyRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Type     string          `json:"type" validate:"required,oneof=Life Health Property Vehicle"`
	Coverage string          `json:"coverage" validate:"required"`
	Premium  decimal.Decimal `json:"premium"`
	Terms    string          `json:"terms" validate:"required"`
}

// UpdateAdminPolicyRequest entrada para editar una póliza; solo se aplican los campos presentes.
type UpdateAdminPolicyRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Type     *string          `json:"type" validate:"omitempty,oneof=Life Health Property Vehicle"`
	Coverage *string          `json:"coverage"`
	Premium  *decimal.Decimal `json:"premium"`
	Terms    *string          `json:"terms"`
}

// AdminPolicyResponse salida de una póliza administrable.
type AdminPolicyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Coverage  string          `json:"coverage"`
	Premium   decimal.Decimal `json:"premium"`
	Terms     string          `json:"terms"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
