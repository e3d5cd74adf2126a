package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// WalletTx transferencia del activo nativo solicitada a la billetera.
type WalletTx struct {
	From     string
	To       string
	ValueWei decimal.Decimal
}

// WalletProvider puerto de salida hacia el proveedor de billetera (cuentas, firma y transferencia).
// Los adaptadores deben devolver domain.ErrWalletUnavailable si no hay billetera instalada y
// domain.ErrWalletRejected si el usuario rechaza la solicitud.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	SignMessage(ctx context.Context, account, message string) (string, error)
	SendTransaction(ctx context.Context, tx WalletTx) (string, error)
}

// TxReceipt resultado de un pago enviado por la billetera.
type TxReceipt struct {
	Hash     string
	From     string
	To       string
	ValueWei decimal.Decimal
}

// SignatureRequester pide al usuario firmar un mensaje legible antes de una acción sensible.
// La firma devuelta no se verifica: es fricción de confirmación, no autorización.
type SignatureRequester interface {
	RequestSignature(ctx context.Context, message string) (string, error)
}

// PaymentSender envía el pago de una prima en USD a través de la billetera conectada.
type PaymentSender interface {
	Connected() bool
	SendPayment(ctx context.Context, amountUSD decimal.Decimal) (*TxReceipt, error)
}
