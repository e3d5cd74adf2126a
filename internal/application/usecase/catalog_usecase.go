package usecase

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// CatalogUseCase consultas del catálogo público de pólizas.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// List devuelve las pólizas en orden de semilla. Con category no vacío filtra por coincidencia exacta.
func (uc *CatalogUseCase) List(ctx context.Context, category string) ([]dto.PublicPolicyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PublicPolicyResponse, 0, len(list))
	for _, p := range list {
		if category != "" && p.Category != category {
			continue
		}
		items = append(items, toPublicPolicyResponse(p))
	}
	return items, nil
}

// GetByID devuelve el detalle de una póliza. ErrNotFound si no existe.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.PublicPolicyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toPublicPolicyResponse(p)
	return &out, nil
}

func toPublicPolicyResponse(p *entity.PublicPolicy) dto.PublicPolicyResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	requirements := p.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return dto.PublicPolicyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Company:      p.Company,
		Category:     p.Category,
		Coverage:     p.Coverage,
		Premium:      p.Premium,
		Description:  p.Description,
		Features:     features,
		Requirements: requirements,
		Image:        p.Image,
	}
}
