package entity

import "time"

// Session asocia un empleado autenticado a un identificador de sesión.
// El ID viaja como jti del JWT; cerrar sesión elimina la entrada.
type Session struct {
	ID        string
	Employee  Employee
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired indica si la sesión ya venció en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
