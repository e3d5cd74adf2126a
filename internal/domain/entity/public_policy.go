package entity

import "github.com/shopspring/decimal"

// Categorías del catálogo público.
const (
	CategoryLife     = "life"
	CategoryHealth   = "health"
	CategoryProperty = "property"
)

// PublicPolicy es una póliza publicada en el catálogo que los clientes pueden consultar.
// Coverage es texto de presentación (ej. "$500,000"); Premium es la prima mensual en USD.
type PublicPolicy struct {
	ID           string
	Name         string
	Company      string
	Category     string
	Coverage     string
	Premium      decimal.Decimal
	Description  string
	Features     []string
	Requirements []string
	Image        string
}
