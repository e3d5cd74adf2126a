package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago en criptomoneda de la prima de una solicitud.
// ValueWei es un entero (18 decimales de ETH) representado con decimal para no perder precisión.
type Payment struct {
	ID            string
	ApplicationID string
	PolicyID      string
	PolicyName    string
	PremiumUSD    decimal.Decimal
	ValueWei      decimal.Decimal
	From          string
	To            string
	TxHash        string
	CreatedAt     time.Time
}

// ShortHash abrevia un hash o dirección: primeros 6 caracteres + "..." + últimos 4.
// Cuenta caracteres, no bytes.
func ShortHash(h string) string {
	r := []rune(h)
	if len(r) <= 10 {
		return h
	}
	return string(r[:6]) + "..." + string(r[len(r)-4:])
}
