package repository

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// ApplicationRepository almacena solicitudes de póliza en curso.
type ApplicationRepository interface {
	Save(ctx context.Context, a *entity.PolicyApplication) error
	GetByID(ctx context.Context, id string) (*entity.PolicyApplication, error)
}

// PaymentRepository almacena los pagos confirmados.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
}
