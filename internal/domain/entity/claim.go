package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancassurance-api/internal/domain"
)

// ClaimRequest datos transitorios del formulario de reclamo.
// Se validan y se registran en el log; nunca se persisten.
type ClaimRequest struct {
	PolicyID    string
	Amount      decimal.Decimal
	Reason      string
	Description string
	Documents   []string // referencias a documentos adjuntos
}

// Validate exige monto positivo, motivo y descripción.
func (c ClaimRequest) Validate() error {
	if !c.Amount.IsPositive() {
		return fmt.Errorf("%w: claim_amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Reason) == "" {
		return fmt.Errorf("%w: reason es requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: description es requerido", domain.ErrInvalidInput)
	}
	return nil
}
