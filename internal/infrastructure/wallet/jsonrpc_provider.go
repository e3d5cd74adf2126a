// Package wallet implementa ports.WalletProvider contra un puente de billetera JSON-RPC 2.0 sobre HTTP
// (métodos eth_requestAccounts, personal_sign y eth_sendTransaction).
package wallet

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jhoicas/bancassurance-api/internal/application/ports"
	"github.com/jhoicas/bancassurance-api/internal/domain"
	"github.com/jhoicas/bancassurance-api/pkg/ether"
)

// Verificar en tiempo de compilación que JSONRPCProvider implementa WalletProvider.
var _ ports.WalletProvider = (*JSONRPCProvider)(nil)

// codeUserRejected código EIP-1193 de rechazo por parte del usuario.
const codeUserRejected = 4001

// JSONRPCProvider adaptador HTTP hacia el puente de billetera.
// Con url vacío todas las llamadas devuelven domain.ErrWalletUnavailable.
type JSONRPCProvider struct {
	url        string
	httpClient *http.Client
	nextID     atomic.Int64
}

// NewJSONRPCProvider construye el adaptador. El gateway impone además un timeout por solicitud.
func NewJSONRPCProvider(url string, timeout time.Duration) *JSONRPCProvider {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &JSONRPCProvider{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Protocolo JSON-RPC 2.0 ────────────────────────────────────────────────────

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type txParams struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// call envía la solicitud y devuelve el campo result ya validado.
func (p *JSONRPCProvider) call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if p.url == "" {
		return gjson.Result{}, domain.ErrWalletUnavailable
	}
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: p.nextID.Add(1), Method: method, Params: params})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("wallet: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("wallet: crear HTTP request: %w", err)
	}
	req.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, fmt.Errorf("%w: timeout o cancelación: %w", domain.ErrWalletProvider, ctx.Err())
		}
		return gjson.Result{}, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrWalletUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: leer respuesta: %v", domain.ErrWalletProvider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%w: HTTP %d: %s", domain.ErrWalletProvider, resp.StatusCode, string(raw))
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: respuesta no es JSON", domain.ErrWalletProvider)
	}

	if rpcErr := gjson.GetBytes(raw, "error"); rpcErr.Exists() && rpcErr.Type != gjson.Null {
		code := rpcErr.Get("code").Int()
		msg := rpcErr.Get("message").String()
		if code == codeUserRejected {
			return gjson.Result{}, fmt.Errorf("%w: %s", domain.ErrWalletRejected, msg)
		}
		return gjson.Result{}, fmt.Errorf("%w: %s (code %d)", domain.ErrWalletProvider, msg, code)
	}
	result := gjson.GetBytes(raw, "result")
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: respuesta sin result", domain.ErrWalletProvider)
	}
	return result, nil
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// RequestAccounts eth_requestAccounts.
func (p *JSONRPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	result, err := p.call(ctx, "eth_requestAccounts")
	if err != nil {
		return nil, err
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: eth_requestAccounts no devolvió una lista", domain.ErrWalletProvider)
	}
	var accounts []string
	for _, a := range result.Array() {
		accounts = append(accounts, a.String())
	}
	return accounts, nil
}

// SignMessage personal_sign con el mensaje codificado en hex (0x…).
func (p *JSONRPCProvider) SignMessage(ctx context.Context, account, message string) (string, error) {
	result, err := p.call(ctx, "personal_sign", "0x"+hex.EncodeToString([]byte(message)), account)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// SendTransaction eth_sendTransaction con el valor como quantity hex.
func (p *JSONRPCProvider) SendTransaction(ctx context.Context, tx ports.WalletTx) (string, error) {
	result, err := p.call(ctx, "eth_sendTransaction", txParams{
		From:  tx.From,
		To:    tx.To,
		Value: ether.ToHex(tx.ValueWei),
	})
	if err != nil {
		return "", err
	}
	return result.String(), nil
}
