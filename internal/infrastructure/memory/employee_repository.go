// Package memory implementa los repositorios en memoria del proceso (sync.RWMutex + copias defensivas).
package memory

import (
	"context"

	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
	"github.com/jhoicas/bancassurance-api/internal/domain/repository"
)

// EmployeeRepository tabla de credenciales fija, cargada desde la semilla.
type EmployeeRepository struct {
	employees []entity.Employee
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

// NewEmployeeRepository construye el repositorio con los empleados en orden de semilla.
func NewEmployeeRepository(employees []entity.Employee) *EmployeeRepository {
	cp := make([]entity.Employee, len(employees))
	copy(cp, employees)
	return &EmployeeRepository{employees: cp}
}

// FindByCredentials devuelve el primer empleado con usuario y contraseña exactos, o nil.
func (r *EmployeeRepository) FindByCredentials(ctx context.Context, username, password string) (*entity.Employee, error) {
	for i := range r.employees {
		if r.employees[i].Username == username && r.employees[i].Password == password {
			e := r.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}

// GetByID devuelve el empleado o nil.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	for i := range r.employees {
		if r.employees[i].ID == id {
			e := r.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}
