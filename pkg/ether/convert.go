// Package ether convierte montos entre USD, ETH y wei usando aritmética decimal exacta.
package ether

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimals cantidad de decimales de ETH (1 ETH = 10^18 wei).
const Decimals = 18

// USDToWei convierte amountUSD a wei con una tasa fija (USD por 1 ETH).
// El monto en ETH se redondea a 18 decimales antes de pasar a wei.
func USDToWei(amountUSD, usdPerETH decimal.Decimal) (decimal.Decimal, error) {
	if !usdPerETH.IsPositive() {
		return decimal.Zero, fmt.Errorf("ether: tasa USD/ETH inválida: %s", usdPerETH)
	}
	if amountUSD.IsNegative() {
		return decimal.Zero, fmt.Errorf("ether: monto negativo: %s", amountUSD)
	}
	eth := amountUSD.DivRound(usdPerETH, Decimals)
	return eth.Shift(Decimals).Truncate(0), nil
}

// FormatEther expresa wei en ETH (ej. 22500000000000000 → "0.0225").
func FormatEther(wei decimal.Decimal) string {
	return wei.Shift(-Decimals).String()
}

// ToHex codifica una cantidad entera de wei como quantity JSON-RPC ("0x4fefa17b724000").
func ToHex(wei decimal.Decimal) string {
	return "0x" + wei.Truncate(0).BigInt().Text(16)
}
