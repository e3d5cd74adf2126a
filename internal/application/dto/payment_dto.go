package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentResponse comprobante de pago de una prima.
type PaymentResponse struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"application_id"`
	PolicyID      string          `json:"policy_id"`
	PolicyName    string          `json:"policy_name"`
	PremiumUSD    decimal.Decimal `json:"premium_usd"`
	ValueWei      string          `json:"value_wei"`
	ValueETH      string          `json:"value_eth"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	TxHash        string          `json:"tx_hash"`
	ShortTxHash   string          `json:"short_tx_hash"`
	ExplorerURL   string          `json:"explorer_url"`
	CreatedAt     time.Time       `json:"created_at"`
}
