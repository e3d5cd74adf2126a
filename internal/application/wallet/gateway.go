// Package wallet serializa el acceso a la billetera del usuario y mantiene la cuenta conectada.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/pkg/ether"
	"github.com/jhoicas/bancassurance-api/pkg/logger"
	"github.com/jhoicas/bancassurance-api/pkg/metrics"
)

// Operaciones registradas en métricas.
const (
	opConnect = "connect"
	opSign    = "sign"
	opSend    = "send"
)

// Config parámetros del gateway.
type Config struct {
	Destination string          // dirección que recibe las primas
	USDPerETH   decimal.Decimal // tasa fija de conversión
	Timeout     time.Duration   // máximo por solicitud; 0 = sin límite propio
}

// Gateway es el único punto de acceso a la billetera del proceso.
// Solo admite una solicitud en vuelo: una segunda concurrente falla con domain.ErrWalletBusy.
type Gateway struct {
	provider ports.WalletProvider
	cfg      Config
	log      *logger.Logger

	slot chan struct{}

	mu      sync.RWMutex
	account string
}

// NewGateway construye el gateway. provider nil equivale a no tener billetera instalada.
func NewGateway(provider ports.WalletProvider, cfg Config, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{
		provider: provider,
		cfg:      cfg,
		log:      log.Component("wallet"),
		slot:     make(chan struct{}, 1),
	}
}

var (
	_ ports.SignatureRequester = (*Gateway)(nil)
	_ ports.PaymentSender      = (*Gateway)(nil)
)

func (g *Gateway) acquire(op string) error {
	select {
	case g.slot <- struct{}{}:
		return nil
	default:
		metrics.RecordWallet(op, metrics.OutcomeBusy)
		return domain.ErrWalletBusy
	}
}

func (g *Gateway) release() { <-g.slot }

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, g.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// Account devuelve la cuenta conectada o "".
func (g *Gateway) Account() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.account
}

// Connected indica si hay una cuenta conectada.
func (g *Gateway) Connected() bool {
	return g.Account() != ""
}

// Connect solicita cuentas a la billetera y guarda la primera.
func (g *Gateway) Connect(ctx context.Context) (string, error) {
	if err := g.acquire(opConnect); err != nil {
		return "", err
	}
	defer g.release()

	account, err := g.connect(ctx)
	g.record(opConnect, err)
	if err != nil {
		return "", err
	}
	g.log.Info().Str("account", account).Msg("billetera conectada")
	return account, nil
}

func (g *Gateway) connect(ctx context.Context) (string, error) {
	if g.provider == nil {
		return "", domain.ErrWalletUnavailable
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	accounts, err := g.provider.RequestAccounts(ctx)
	if err != nil {
		return "", g.normalize(err)
	}
	if len(accounts) == 0 || accounts[0] == "" {
		return "", fmt.Errorf("%w: la billetera no devolvió cuentas", domain.ErrWalletProvider)
	}

	g.mu.Lock()
	g.account = accounts[0]
	g.mu.Unlock()
	return accounts[0], nil
}

// ensureAccount conecta si todavía no hay cuenta. Se llama con el slot tomado.
func (g *Gateway) ensureAccount(ctx context.Context) (string, error) {
	if account := g.Account(); account != "" {
		return account, nil
	}
	return g.connect(ctx)
}

// RequestSignature pide firmar message con la cuenta conectada (conecta si hace falta).
func (g *Gateway) RequestSignature(ctx context.Context, message string) (string, error) {
	if err := g.acquire(opSign); err != nil {
		return "", err
	}
	defer g.release()

	sig, err := g.sign(ctx, message)
	g.record(opSign, err)
	if err != nil {
		g.log.Warn().Err(err).Str("message", message).Msg("firma no obtenida")
		return "", err
	}
	g.log.Debug().Str("message", message).Msg("mensaje firmado")
	return sig, nil
}

func (g *Gateway) sign(ctx context.Context, message string) (string, error) {
	account, err := g.ensureAccount(ctx)
	if err != nil {
		return "", err
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	sig, err := g.provider.SignMessage(ctx, account, message)
	if err != nil {
		return "", g.normalize(err)
	}
	return sig, nil
}

// SendPayment convierte amountUSD a wei y lo transfiere desde la cuenta conectada al destino configurado.
// Exige una cuenta ya conectada.
func (g *Gateway) SendPayment(ctx context.Context, amountUSD decimal.Decimal) (*ports.TxReceipt, error) {
	if err := g.acquire(opSend); err != nil {
		return nil, err
	}
	defer g.release()

	receipt, err := g.send(ctx, amountUSD)
	g.record(opSend, err)
	if err != nil {
		g.log.Warn().Err(err).Str("amount_usd", amountUSD.String()).Msg("pago no enviado")
		return nil, err
	}
	g.log.Info().
		Str("tx_hash", receipt.Hash).
		Str("from", receipt.From).
		Str("value_wei", receipt.ValueWei.String()).
		Msg("pago enviado")
	return receipt, nil
}

func (g *Gateway) send(ctx context.Context, amountUSD decimal.Decimal) (*ports.TxReceipt, error) {
	if g.provider == nil {
		return nil, domain.ErrWalletUnavailable
	}
	from := g.Account()
	if from == "" {
		return nil, domain.ErrWalletNotConnected
	}
	wei, err := ether.USDToWei(amountUSD, g.cfg.USDPerETH)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	tx := ports.WalletTx{From: from, To: g.cfg.Destination, ValueWei: wei}
	hash, err := g.provider.SendTransaction(ctx, tx)
	if err != nil {
		return nil, g.normalize(err)
	}
	if hash == "" {
		return nil, fmt.Errorf("%w: la billetera no devolvió hash de transacción", domain.ErrWalletProvider)
	}
	return &ports.TxReceipt{Hash: hash, From: from, To: g.cfg.Destination, ValueWei: wei}, nil
}

// normalize deja pasar los errores de billetera conocidos y envuelve el resto como ErrWalletProvider.
func (g *Gateway) normalize(err error) error {
	switch {
	case errors.Is(err, domain.ErrWalletRejected),
		errors.Is(err, domain.ErrWalletUnavailable),
		errors.Is(err, domain.ErrWalletProvider):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: tiempo de espera agotado", domain.ErrWalletProvider)
	}
	return fmt.Errorf("%w: %v", domain.ErrWalletProvider, err)
}

func (g *Gateway) record(op string, err error) {
	metrics.RecordWallet(op, Outcome(err))
}

// Outcome clasifica un error de billetera para métricas.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrWalletRejected):
		return metrics.OutcomeRejected
	case errors.Is(err, domain.ErrWalletBusy):
		return metrics.OutcomeBusy
	case errors.Is(err, domain.ErrWalletUnavailable):
		return metrics.OutcomeUnavailable
	}
	return metrics.OutcomeError
}
