package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/domain"
)

// errorMapping traduce un error de dominio a status y código HTTP.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: se usa la primera coincidencia con errors.Is.
var errorTable = []errorMapping{
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAlreadyClaimed, fiber.StatusConflict, "ALREADY_CLAIMED"},
	{domain.ErrInvalidStage, fiber.StatusConflict, "INVALID_STAGE"},
	{domain.ErrWalletBusy, fiber.StatusConflict, "WALLET_BUSY"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConfirmationRequired, fiber.StatusPreconditionRequired, "CONFIRMATION_REQUIRED"},
	{domain.ErrOTPMismatch, fiber.StatusUnprocessableEntity, "OTP_INVALID"},
	{domain.ErrOTPExpired, fiber.StatusUnprocessableEntity, "OTP_EXPIRED"},
	{domain.ErrWalletRejected, fiber.StatusUnprocessableEntity, "WALLET_REJECTED"},
	{domain.ErrWalletNotConnected, fiber.StatusPreconditionFailed, "WALLET_NOT_CONNECTED"},
	{domain.ErrWalletUnavailable, fiber.StatusServiceUnavailable, "WALLET_UNAVAILABLE"},
	{domain.ErrWalletProvider, fiber.StatusBadGateway, "WALLET_ERROR"},
}

// writeError responde con el ErrorResponse correspondiente al error de dominio.
// Los errores no reconocidos se devuelven como 500 INTERNAL sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
