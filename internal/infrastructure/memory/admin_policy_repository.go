package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// AdminPolicyRepository pólizas administrables; List conserva el orden de inserción.
type AdminPolicyRepository struct {
	mu       sync.RWMutex
	order    []string
	policies map[string]entity.AdminPolicy
}

var _ repository.AdminPolicyRepository = (*AdminPolicyRepository)(nil)

// NewAdminPolicyRepository construye el repositorio con las pólizas semilla.
func NewAdminPolicyRepository(seed []entity.AdminPolicy) *AdminPolicyRepository {
	r := &AdminPolicyRepository{policies: make(map[string]entity.AdminPolicy, len(seed))}
	for _, p := range seed {
		if _, ok := r.policies[p.ID]; ok {
			continue
		}
		r.order = append(r.order, p.ID)
		r.policies[p.ID] = p
	}
	return r
}

// Create agrega al final. ErrDuplicate si el ID ya existe.
func (r *AdminPolicyRepository) Create(ctx context.Context, p *entity.AdminPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.order = append(r.order, p.ID)
	r.policies[p.ID] = *p
	return nil
}

// GetByID devuelve la póliza o nil.
func (r *AdminPolicyRepository) GetByID(ctx context.Context, id string) (*entity.AdminPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *AdminPolicyRepository) List(ctx context.Context) ([]*entity.AdminPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.AdminPolicy, 0, len(r.order))
	for _, id := range r.order {
		p := r.policies[id]
		out = append(out, &p)
	}
	return out, nil
}

// Update reemplaza la póliza en su misma posición. ErrNotFound si no existe.
func (r *AdminPolicyRepository) Update(ctx context.Context, p *entity.AdminPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.policies[p.ID] = *p
	return nil
}

// Delete elimina la póliza. ErrNotFound si no existe.
func (r *AdminPolicyRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.policies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.policies, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
