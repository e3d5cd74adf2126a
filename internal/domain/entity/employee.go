package entity

// Roles válidos para Employee.
const (
	RoleInsurance = "insurance"
	RoleBank      = "bank"
)

// Employee representa un empleado de aseguradora o de banco con acceso al back-office.
// Es dato semilla inmutable: se carga al iniciar y nunca se modifica.
type Employee struct {
	ID       string
	Username string
	Password string // texto plano: solo datos de demostración
	Name     string
	Role     string // insurance, bank
	Company  string
}

// ValidRole indica si role es uno de los roles de back-office conocidos.
func ValidRole(role string) bool {
	return role == RoleInsurance || role == RoleBank
}
