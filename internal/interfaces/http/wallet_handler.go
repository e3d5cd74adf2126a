package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancassurance-api/internal/application/dto"
	"github.com/jhoicas/bancassurance-api/internal/application/wallet"
	"github.com/jhoicas/bancassurance-api/internal/domain/entity"
)

// WalletHandler conexión y estado de la billetera.
type WalletHandler struct {
	gw *wallet.Gateway
}

// NewWalletHandler construye el handler.
func NewWalletHandler(gw *wallet.Gateway) *WalletHandler {
	return &WalletHandler{gw: gw}
}

// Status godoc
// @Summary      Estado de la billetera
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  dto.WalletStatusResponse
// @Router       /api/wallet [get]
func (h *WalletHandler) Status(c *fiber.Ctx) error {
	return c.JSON(walletStatus(h.gw.Account()))
}

// Connect godoc
// @Summary      Conectar billetera
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  dto.WalletStatusResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/wallet/connect [post]
func (h *WalletHandler) Connect(c *fiber.Ctx) error {
	account, err := h.gw.Connect(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(walletStatus(account))
}

func walletStatus(account string) dto.WalletStatusResponse {
	if account == "" {
		return dto.WalletStatusResponse{}
	}
	return dto.WalletStatusResponse{Connected: true, Account: account, ShortAccount: entity.ShortHash(account)}
}
