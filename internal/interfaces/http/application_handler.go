package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/enrollment"
)

// ApplicationHandler flujo público de solicitud de una póliza del catálogo.
type ApplicationHandler struct {
	uc *enrollment.UseCase
}

// NewApplicationHandler construye el handler.
func NewApplicationHandler(uc *enrollment.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar solicitud
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartApplicationRequest  true  "Póliza del catálogo"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/applications [post]
func (h *ApplicationHandler) Start(c *fiber.Ctx) error {
	var in dto.StartApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.PolicyID == "" {
		return badRequest(c, "VALIDATION", "policy_id es requerido")
	}
	out, err := h.uc.Start(c.UserContext(), in.PolicyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado de una solicitud
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OpenForm godoc
// @Summary      Abrir formulario de solicitud
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/form/open [post]
func (h *ApplicationHandler) OpenForm(c *fiber.Ctx) error {
	out, err := h.uc.OpenForm(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitForm godoc
// @Summary      Enviar formulario
// @Description  Valida los datos y envía los códigos de verificación por email y teléfono.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la solicitud"
// @Param        body  body  dto.ApplicationFormRequest  true  "Datos personales"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/form [post]
func (h *ApplicationHandler) SubmitForm(c *fiber.Ctx) error {
	var in dto.ApplicationFormRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SubmitForm(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VerifyOTP godoc
// @Summary      Verificar códigos
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la solicitud"
// @Param        body  body  dto.VerifyOTPRequest  true  "Códigos de email y teléfono"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/otp [post]
func (h *ApplicationHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.VerifyOTP(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar solicitud
// @Description  Vuelve a browsing y descarta formulario y códigos.
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/cancel [post]
func (h *ApplicationHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar la prima
// @Description  Envía la prima en ETH desde la billetera conectada.
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      201  {object}  dto.PaymentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/applications/{id}/pay [post]
func (h *ApplicationHandler) Pay(c *fiber.Ctx) error {
	out, err := h.uc.Pay(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
