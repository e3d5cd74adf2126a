package dto

import "github.com/shopspring/decimal"

// CustomerPolicyResponse póliza de cliente vista desde el panel del banco.
// Las fechas se devuelven como YYYY-MM-DD.
type CustomerPolicyResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	PolicyName   string          `json:"policy_name"`
	Status       string          `json:"status"`
	StartDate    string          `json:"start_date"`
	Premium      decimal.Decimal `json:"premium"`
	NextPayment  string          `json:"next_payment"`
}

// ClaimRequest formulario de reclamo sobre una póliza de cliente.
type ClaimRequest struct {
	ClaimAmount decimal.Decimal `json:"claim_amount"`
	Reason      string          `json:"reason" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Documents   []string        `json:"documents"`
}
