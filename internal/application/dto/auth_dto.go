package dto

import "time"

// LoginRequest credenciales del formulario de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EmployeeResponse datos públicos del empleado autenticado (sin contraseña).
type EmployeeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company"`
}

// LoginResponse token de sesión, empleado y panel al que debe dirigirse el cliente.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Employee  EmployeeResponse `json:"employee"`
	Dashboard string           `json:"dashboard"`
}
