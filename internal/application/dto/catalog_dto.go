package dto

import "github.com/shopspring/decimal"

// PublicPolicyResponse póliza del catálogo público.
type PublicPolicyResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Company      string          `json:"company"`
	Category     string          `json:"category"`
	Coverage     string          `json:"coverage"`
	Premium      decimal.Decimal `json:"premium"`
	Description  string          `json:"description"`
	Features     []string        `json:"features"`
	Requirements []string        `json:"requirements"`
	Image        string          `json:"image"`
}
