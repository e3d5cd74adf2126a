package repository

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// EmployeeRepository puerto de lectura de la tabla de credenciales (solo lectura).
type EmployeeRepository interface {
	// FindByCredentials devuelve el primer empleado cuyo usuario y contraseña coinciden exactamente, o nil.
	FindByCredentials(ctx context.Context, username, password string) (*entity.Employee, error)
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
}
