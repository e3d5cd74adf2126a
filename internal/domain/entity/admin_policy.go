package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de póliza administrables.
const (
	PolicyTypeLife     = "Life"
	PolicyTypeHealth   = "Health"
	PolicyTypeProperty = "Property"
	PolicyTypeVehicle  = "Vehicle"
)

// AdminPolicy es la definición de póliza que gestiona la aseguradora desde su panel.
type AdminPolicy struct {
	ID        string
	Name      string
	Type      string // Life, Health, Property, Vehicle
	Coverage  string
	Premium   decimal.Decimal
	Terms     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidPolicyType indica si t es un tipo de póliza administrable.
func ValidPolicyType(t string) bool {
	switch t {
	case PolicyTypeLife, PolicyTypeHealth, PolicyTypeProperty, PolicyTypeVehicle:
		return true
	}
	return false
}
