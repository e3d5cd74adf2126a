package dto

// WalletStatusResponse estado de la billetera conectada.
type WalletStatusResponse struct {
	Connected    bool   `json:"connected"`
	Account      string `json:"account,omitempty"`
	ShortAccount string `json:"short_account,omitempty"`
}
