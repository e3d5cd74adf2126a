package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
)

// AdminPolicyHandler gestión de pólizas desde el panel de la aseguradora (rol insurance).
type AdminPolicyHandler struct {
	uc *usecase.AdminPolicyUseCase
}

// NewAdminPolicyHandler construye el handler.
func NewAdminPolicyHandler(uc *usecase.AdminPolicyUseCase) *AdminPolicyHandler {
	return &AdminPolicyHandler{uc: uc}
}

// List godoc
// @Summary      Listar pólizas administrables
// @Tags         admin-policies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.AdminPolicyResponse]
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/policies [get]
func (h *AdminPolicyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetByID godoc
// @Summary      Obtener póliza administrable
// @Tags         admin-policies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la póliza"
// @Success      200  {object}  dto.AdminPolicyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/policies/{id} [get]
func (h *AdminPolicyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear póliza
// @Description  Antes de guardar se solicita la firma "Add new policy: <name>" en la billetera.
// @Tags         admin-policies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdminPolicyRequest  true  "Datos de la póliza"
// @Success      201   {object}  dto.AdminPolicyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/admin/policies [post]
func (h *AdminPolicyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdminPolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar póliza
// @Description  Solo se modifican los campos presentes. Requiere la firma "Edit policy: <id>".
// @Tags         admin-policies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la póliza"
// @Param        body  body  dto.UpdateAdminPolicyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AdminPolicyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/admin/policies/{id} [put]
func (h *AdminPolicyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAdminPolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar póliza
// @Description  Requiere confirm=true y la firma "Delete policy: <id>".
// @Tags         admin-policies
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "ID de la póliza"
// @Param        confirm  query  bool    true  "Confirmación explícita"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/admin/policies/{id} [delete]
func (h *AdminPolicyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.QueryBool("confirm", false)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "póliza eliminada"})
}
