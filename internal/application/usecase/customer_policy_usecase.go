package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
	"github.com/jhoicas/bancassurance-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

// CustomerPolicyUseCase pólizas de cliente y reclamos desde el panel del banco.
type CustomerPolicyUseCase struct {
	repo   repository.CustomerPolicyRepository
	signer ports.SignatureRequester
	log    *logger.Logger
}

// NewCustomerPolicyUseCase construye el caso de uso.
func NewCustomerPolicyUseCase(repo repository.CustomerPolicyRepository, signer ports.SignatureRequester, log *logger.Logger) *CustomerPolicyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerPolicyUseCase{repo: repo, signer: signer, log: log.Component("customer_policies")}
}

// List devuelve todas las pólizas de cliente en orden de semilla.
func (uc *CustomerPolicyUseCase) List(ctx context.Context) ([]dto.CustomerPolicyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerPolicyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toCustomerPolicyResponse(p))
	}
	return items, nil
}

// FileClaim valida el reclamo, pide la firma "Process claim for policy: <id>" y marca la póliza como claimed.
// Los datos del reclamo solo se registran en el log.
func (uc *CustomerPolicyUseCase) FileClaim(ctx context.Context, policyID string, in dto.ClaimRequest) (*dto.CustomerPolicyResponse, error) {
	policy, err := uc.repo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.ErrNotFound
	}
	if !policy.CanClaim() {
		metrics.RecordClaim("already_claimed")
		return nil, domain.ErrAlreadyClaimed
	}

	claim := entity.ClaimRequest{
		PolicyID:    policyID,
		Amount:      in.ClaimAmount,
		Reason:      in.Reason,
		Description: in.Description,
		Documents:   in.Documents,
	}
	if err := claim.Validate(); err != nil {
		return nil, err
	}

	message := "Process claim for policy: " + policyID
	if _, err := uc.signer.RequestSignature(ctx, message); err != nil {
		metrics.RecordClaim(metrics.OutcomeRejected)
		return nil, fmt.Errorf("firma %q: %w", message, err)
	}

	if err := uc.repo.MarkClaimed(ctx, policyID); err != nil {
		metrics.RecordClaim(metrics.OutcomeError)
		return nil, err
	}
	policy.Status = entity.CustomerPolicyClaimed
	metrics.RecordClaim(metrics.OutcomeOK)

	uc.log.Info().
		Str("policy_id", policyID).
		Str("customer", policy.CustomerName).
		Str("claim_amount", claim.Amount.String()).
		Str("reason", claim.Reason).
		Int("documents", len(claim.Documents)).
		Msg("reclamo procesado")

	out := toCustomerPolicyResponse(policy)
	return &out, nil
}

func toCustomerPolicyResponse(p *entity.CustomerPolicy) dto.CustomerPolicyResponse {
	return dto.CustomerPolicyResponse{
		ID:           p.ID,
		CustomerName: p.CustomerName,
		PolicyName:   p.PolicyName,
		Status:       string(p.Status),
		StartDate:    formatDate(p.StartDate),
		Premium:      p.Premium,
		NextPayment:  formatDate(p.NextPayment),
	}
}
