package repository

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// AdminPolicyRepository define el puerto de persistencia para AdminPolicy (DIP).
// GetByID devuelve (nil, nil) si no existe.
type AdminPolicyRepository interface {
	Create(ctx context.Context, p *entity.AdminPolicy) error
	GetByID(ctx context.Context, id string) (*entity.AdminPolicy, error)
	List(ctx context.Context) ([]*entity.AdminPolicy, error)
	Update(ctx context.Context, p *entity.AdminPolicy) error
	Delete(ctx context.Context, id string) error
}
