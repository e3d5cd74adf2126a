package memory

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// CatalogRepository catálogo público de solo lectura.
type CatalogRepository struct {
	policies []entity.PublicPolicy
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository construye el catálogo conservando el orden recibido.
func NewCatalogRepository(policies []entity.PublicPolicy) *CatalogRepository {
	cp := make([]entity.PublicPolicy, len(policies))
	copy(cp, policies)
	return &CatalogRepository{policies: cp}
}

func clonePublicPolicy(p entity.PublicPolicy) *entity.PublicPolicy {
	p.Features = append([]string(nil), p.Features...)
	p.Requirements = append([]string(nil), p.Requirements...)
	return &p
}

func (r *CatalogRepository) List(ctx context.Context) ([]*entity.PublicPolicy, error) {
	out := make([]*entity.PublicPolicy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, clonePublicPolicy(p))
	}
	return out, nil
}

// GetByID devuelve la póliza o nil.
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*entity.PublicPolicy, error) {
	for _, p := range r.policies {
		if p.ID == id {
			return clonePublicPolicy(p), nil
		}
	}
	return nil, nil
}
