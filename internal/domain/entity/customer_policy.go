package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancassurance-api/internal/domain"
)

// CustomerPolicyStatus estado de una póliza emitida a un cliente.
type CustomerPolicyStatus string

const (
	CustomerPolicyActive  CustomerPolicyStatus = "active"
	CustomerPolicyPending CustomerPolicyStatus = "pending"
	CustomerPolicyClaimed CustomerPolicyStatus = "claimed"
)

// CustomerPolicy póliza emitida a un cliente, gestionada por el banco.
// La única transición permitida es hacia claimed; no hay vuelta atrás.
type CustomerPolicy struct {
	ID           string
	CustomerName string
	PolicyName   string
	Status       CustomerPolicyStatus
	StartDate    time.Time
	Premium      decimal.Decimal
	NextPayment  time.Time
}

// CanClaim indica si todavía se puede procesar un reclamo sobre la póliza.
func (p *CustomerPolicy) CanClaim() bool {
	return p.Status != CustomerPolicyClaimed
}

// MarkClaimed pasa la póliza a claimed. Devuelve ErrAlreadyClaimed si ya lo estaba.
func (p *CustomerPolicy) MarkClaimed() error {
	if !p.CanClaim() {
		return domain.ErrAlreadyClaimed
	}
	p.Status = CustomerPolicyClaimed
	return nil
}
