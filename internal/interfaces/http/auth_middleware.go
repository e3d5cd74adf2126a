package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/pkg/jwt"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalSessionID  = "session_id"
	LocalEmployeeID = "employee_id"
	LocalCompany    = "company"
	LocalRole       = "role"
)

// sessionChecker es lo mínimo que necesita el middleware para saber si la sesión sigue abierta.
// Lo implementa *auth.AuthUseCase.
type sessionChecker interface {
	Current(ctx context.Context, sessionID string) (*entity.Employee, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
// Si sessions no es nil, además exige que la sesión (jti) siga abierta: un token de una sesión
// cerrada con logout responde 401 SESSION_EXPIRED aunque la firma sea válida.
func AuthMiddleware(jwtSecret string, sessions sessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if sessions != nil {
			if _, err := sessions.Current(c.UserContext(), id.SessionID); err != nil {
				return writeError(c, err)
			}
		}
		c.Locals(LocalSessionID, id.SessionID)
		c.Locals(LocalEmployeeID, id.EmployeeID)
		c.Locals(LocalCompany, id.Company)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del token está entre roles.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + role + " no tiene acceso a este recurso"})
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetSessionID devuelve el id de sesión (jti) del contexto.
func GetSessionID(c *fiber.Ctx) string { return localString(c, LocalSessionID) }

// GetEmployeeID devuelve el id del empleado autenticado.
func GetEmployeeID(c *fiber.Ctx) string { return localString(c, LocalEmployeeID) }

// GetCompany devuelve la compañía del empleado autenticado.
func GetCompany(c *fiber.Ctx) string { return localString(c, LocalCompany) }

// GetRole devuelve el rol del empleado autenticado.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
