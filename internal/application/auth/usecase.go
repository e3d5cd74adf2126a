package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
	"github.com/jhoicas/bancassurance-api/pkg/jwt"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Paneles a los que se redirige tras el login, por rol.
var dashboards = map[string]string{
	entity.RoleInsurance: "/insurance-dashboard",
	entity.RoleBank:      "/bank-dashboard",
}

// DashboardFor devuelve la ruta del panel del rol, o "" si el rol no tiene panel.
func DashboardFor(role string) string {
	return dashboards[role]
}

// AuthUseCase casos de uso de autenticación: login por rol, sesión actual y logout.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	sessions  repository.SessionRepository
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, sessions repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		employees: employees,
		sessions:  sessions,
		jwtCfg:    jwtCfg,
		log:       log.Component("auth"),
		now:       time.Now,
	}
}

// Authenticate busca el empleado con usuario y contraseña exactos. Devuelve (nil, nil) si no coincide.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*entity.Employee, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	return uc.employees.FindByCredentials(ctx, username, password)
}

// Login autentica contra el portal del rol indicado y abre una sesión.
// Credenciales correctas de otro rol se rechazan con el mismo error que credenciales inválidas.
func (uc *AuthUseCase) Login(ctx context.Context, role string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	emp, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.Role != role {
		uc.log.Warn().Str("username", in.Username).Str("portal", role).Msg("login rechazado")
		return nil, domain.ErrUnauthorized
	}

	session, token, err := uc.startSession(ctx, emp)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("employee_id", emp.ID).
		Str("role", emp.Role).
		Str("session_id", session.ID).
		Msg("sesión iniciada")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Employee:  ToEmployeeResponse(emp),
		Dashboard: DashboardFor(emp.Role),
	}, nil
}

func (uc *AuthUseCase) startSession(ctx context.Context, emp *entity.Employee) (*entity.Session, string, error) {
	session := &entity.Session{
		ID:       uuid.New().String(),
		Employee: *emp,
		IssuedAt: uc.now(),
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		SessionID:  session.ID,
		EmployeeID: emp.ID,
		Company:    emp.Company,
		Role:       emp.Role,
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	session.ExpiresAt = exp
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Current devuelve el empleado de la sesión. ErrSessionExpired si no existe, se cerró o venció.
func (uc *AuthUseCase) Current(ctx context.Context, sessionID string) (*entity.Employee, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionExpired
	}
	if session.Expired(uc.now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}
	emp := session.Employee
	return &emp, nil
}

// Logout cierra la sesión. Cerrar una sesión inexistente no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.log.Info().Str("session_id", sessionID).Msg("sesión cerrada")
	return nil
}

// ToEmployeeResponse mapea el empleado sin exponer la contraseña.
func ToEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:       e.ID,
		Username: e.Username,
		Name:     e.Name,
		Role:     e.Role,
		Company:  e.Company,
	}
}
