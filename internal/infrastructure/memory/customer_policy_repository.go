package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// CustomerPolicyRepository pólizas de cliente; List conserva el orden de semilla.
type CustomerPolicyRepository struct {
	mu       sync.RWMutex
	policies []entity.CustomerPolicy
}

var _ repository.CustomerPolicyRepository = (*CustomerPolicyRepository)(nil)

// NewCustomerPolicyRepository construye el repositorio con las pólizas semilla.
func NewCustomerPolicyRepository(seed []entity.CustomerPolicy) *CustomerPolicyRepository {
	cp := make([]entity.CustomerPolicy, len(seed))
	copy(cp, seed)
	return &CustomerPolicyRepository{policies: cp}
}

func (r *CustomerPolicyRepository) List(ctx context.Context) ([]*entity.CustomerPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.CustomerPolicy, 0, len(r.policies))
	for _, p := range r.policies {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

// GetByID devuelve la póliza o nil.
func (r *CustomerPolicyRepository) GetByID(ctx context.Context, id string) (*entity.CustomerPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.policies {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

// MarkClaimed pasa la póliza a claimed bajo el lock de escritura.
func (r *CustomerPolicyRepository) MarkClaimed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.policies {
		if r.policies[i].ID == id {
			return r.policies[i].MarkClaimed()
		}
	}
	return domain.ErrNotFound
}
