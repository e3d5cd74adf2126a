package repository

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// CatalogRepository puerto de lectura del catálogo público. Conserva el orden de la semilla.
type CatalogRepository interface {
	List(ctx context.Context) ([]*entity.PublicPolicy, error)
	GetByID(ctx context.Context, id string) (*entity.PublicPolicy, error)
}
