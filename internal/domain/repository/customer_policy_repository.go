package repository

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// CustomerPolicyRepository define el puerto de persistencia para CustomerPolicy.
type CustomerPolicyRepository interface {
	List(ctx context.Context) ([]*entity.CustomerPolicy, error)
	GetByID(ctx context.Context, id string) (*entity.CustomerPolicy, error)
	// MarkClaimed pasa la póliza a claimed de forma atómica.
	// Devuelve domain.ErrNotFound si no existe y domain.ErrAlreadyClaimed si ya estaba reclamada.
	MarkClaimed(ctx context.Context, id string) error
}
