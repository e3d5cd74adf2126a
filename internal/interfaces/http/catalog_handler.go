package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
)

// CatalogHandler expone el catálogo público de pólizas.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar pólizas del catálogo
// @Description  Sin category devuelve todas; con category devuelve solo las de esa categoría exacta.
// @Tags         catalog
// @Produce      json
// @Param        category  query  string  false  "life, health, property..."
// @Success      200  {object}  dto.ListResponse[dto.PublicPolicyResponse]
// @Router       /api/policies [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetByID godoc
// @Summary      Detalle de una póliza del catálogo
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {object}  dto.PublicPolicyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/policies/{id} [get]
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
