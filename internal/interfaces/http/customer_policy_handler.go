package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/usecase"
)

// CustomerPolicyHandler pólizas de clientes y reclamos desde el panel del banco (rol bank).
type CustomerPolicyHandler struct {
	uc *usecase.CustomerPolicyUseCase
}

// NewCustomerPolicyHandler construye el handler.
func NewCustomerPolicyHandler(uc *usecase.CustomerPolicyUseCase) *CustomerPolicyHandler {
	return &CustomerPolicyHandler{uc: uc}
}

// List godoc
// @Summary      Listar pólizas de clientes
// @Tags         bank
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CustomerPolicyResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/bank/customer-policies [get]
func (h *CustomerPolicyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// FileClaim godoc
// @Summary      Procesar reclamo
// @Description  Solicita la firma "Process claim for policy: <id>" y marca la póliza como claimed.
// @Tags         bank
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la póliza de cliente"
// @Param        body  body  dto.ClaimRequest  true  "Detalle del reclamo"
// @Success      200   {object}  dto.CustomerPolicyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/bank/customer-policies/{id}/claims [post]
func (h *CustomerPolicyHandler) FileClaim(c *fiber.Ctx) error {
	var in dto.ClaimRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.FileClaim(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
