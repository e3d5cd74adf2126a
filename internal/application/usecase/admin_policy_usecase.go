package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
	"github.com/jhoicas/bancassurance-api/pkg/metrics"
)

// AdminPolicyUseCase gestión de pólizas desde el panel de la aseguradora.
// Cada mutación exige antes una firma en la billetera; si la firma falla el almacén no cambia.
type AdminPolicyUseCase struct {
	repo   repository.AdminPolicyRepository
	signer ports.SignatureRequester
	log    *logger.Logger
	now    func() time.Time

	createMu sync.Mutex
}

// NewAdminPolicyUseCase construye el caso de uso.
func NewAdminPolicyUseCase(repo repository.AdminPolicyRepository, signer ports.SignatureRequester, log *logger.Logger) *AdminPolicyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminPolicyUseCase{repo: repo, signer: signer, log: log.Component("admin_policies"), now: time.Now}
}

// List devuelve las pólizas en orden de alta.
func (uc *AdminPolicyUseCase) List(ctx context.Context) ([]dto.AdminPolicyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdminPolicyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toAdminPolicyResponse(p))
	}
	return items, nil
}

// GetByID devuelve una póliza. ErrNotFound si no existe.
func (uc *AdminPolicyUseCase) GetByID(ctx context.Context, id string) (*dto.AdminPolicyResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toAdminPolicyResponse(p)
	return &out, nil
}

func (uc *AdminPolicyUseCase) get(ctx context.Context, id string) (*entity.AdminPolicy, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func validateAdminPolicy(name, typ, coverage, terms string, premium decimal.Decimal) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case !entity.ValidPolicyType(typ):
		return fmt.Errorf("%w: type debe ser Life, Health, Property o Vehicle", domain.ErrInvalidInput)
	case strings.TrimSpace(coverage) == "":
		return fmt.Errorf("%w: coverage es requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(terms) == "":
		return fmt.Errorf("%w: terms es requerido", domain.ErrInvalidInput)
	case premium.IsNegative():
		return fmt.Errorf("%w: premium no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// Create valida, pide la firma "Add new policy: <name>" y agrega la póliza al final.
// El ID son los milisegundos Unix actuales; si ya existe se incrementa hasta quedar libre.
func (uc *AdminPolicyUseCase) Create(ctx context.Context, in dto.CreateAdminPolicyRequest) (*dto.AdminPolicyResponse, error) {
	if err := validateAdminPolicy(in.Name, in.Type, in.Coverage, in.Terms, in.Premium); err != nil {
		return nil, err
	}
	if err := uc.sign(ctx, "create", "Add new policy: "+in.Name); err != nil {
		return nil, err
	}

	uc.createMu.Lock()
	defer uc.createMu.Unlock()

	now := uc.now()
	policy := &entity.AdminPolicy{
		Name:      in.Name,
		Type:      in.Type,
		Coverage:  in.Coverage,
		Premium:   in.Premium,
		Terms:     in.Terms,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for id := now.UnixMilli(); ; id++ {
		policy.ID = strconv.FormatInt(id, 10)
		err := uc.repo.Create(ctx, policy)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			metrics.RecordPolicyMutation("create", metrics.OutcomeError)
			return nil, err
		}
	}
	metrics.RecordPolicyMutation("create", metrics.OutcomeOK)
	uc.log.Info().Str("policy_id", policy.ID).Str("name", policy.Name).Msg("póliza creada")
	out := toAdminPolicyResponse(policy)
	return &out, nil
}

// Update exige que la póliza exista, pide la firma "Edit policy: <id>" y aplica los campos presentes.
func (uc *AdminPolicyUseCase) Update(ctx context.Context, id string, in dto.UpdateAdminPolicyRequest) (*dto.AdminPolicyResponse, error) {
	policy, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		policy.Name = *in.Name
	}
	if in.Type != nil {
		policy.Type = *in.Type
	}
	if in.Coverage != nil {
		policy.Coverage = *in.Coverage
	}
	if in.Premium != nil {
		policy.Premium = *in.Premium
	}
	if in.Terms != nil {
		policy.Terms = *in.Terms
	}
	if err := validateAdminPolicy(policy.Name, policy.Type, policy.Coverage, policy.Terms, policy.Premium); err != nil {
		return nil, err
	}
	if err := uc.sign(ctx, "update", "Edit policy: "+id); err != nil {
		return nil, err
	}

	policy.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, policy); err != nil {
		metrics.RecordPolicyMutation("update", metrics.OutcomeError)
		return nil, err
	}
	metrics.RecordPolicyMutation("update", metrics.OutcomeOK)
	uc.log.Info().Str("policy_id", id).Msg("póliza actualizada")
	out := toAdminPolicyResponse(policy)
	return &out, nil
}

// Delete exige confirmación explícita, que la póliza exista y la firma "Delete policy: <id>".
func (uc *AdminPolicyUseCase) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.sign(ctx, "delete", "Delete policy: "+id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		metrics.RecordPolicyMutation("delete", metrics.OutcomeError)
		return err
	}
	metrics.RecordPolicyMutation("delete", metrics.OutcomeOK)
	uc.log.Info().Str("policy_id", id).Msg("póliza eliminada")
	return nil
}

func (uc *AdminPolicyUseCase) sign(ctx context.Context, action, message string) error {
	sig, err := uc.signer.RequestSignature(ctx, message)
	if err != nil {
		metrics.RecordPolicyMutation(action, metrics.OutcomeRejected)
		return fmt.Errorf("firma %q: %w", message, err)
	}
	uc.log.Debug().Str("signature", entity.ShortHash(sig)).Str("message", message).Msg("firma recibida")
	return nil
}

func toAdminPolicyResponse(p *entity.AdminPolicy) dto.AdminPolicyResponse {
	return dto.AdminPolicyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Coverage:  p.Coverage,
		Premium:   p.Premium,
		Terms:     p.Terms,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
