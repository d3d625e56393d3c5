// README: Rider wallet, payments and the admin payout queue.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

type WalletHandler struct {
	wallets *wallet.Service
}

func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{wallets: svc}
}

func (h *WalletHandler) RiderWallet(c *gin.Context) {
	w, err := h.wallets.RiderWallet(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, w)
}

type paymentReq struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *WalletHandler) Pay(c *gin.Context) {
	var req paymentReq
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.wallets.ProcessPayment(c.Request.Context(), wallet.PaymentCommand{
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"success": true, "transaction": tx})
}

func (h *WalletHandler) PendingPayouts(c *gin.Context) {
	payouts, err := h.wallets.PendingPayouts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"payouts": payouts})
}

func (h *WalletHandler) ApprovePayout(c *gin.Context) {
	p, err := h.wallets.ApprovePayout(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
