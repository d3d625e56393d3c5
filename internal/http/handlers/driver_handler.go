// README: Driver onboarding, dashboard and payout requests.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

type DriverHandler struct {
	drivers *driver.Service
	wallets *wallet.Service
}

func NewDriverHandler(drivers *driver.Service, wallets *wallet.Service) *DriverHandler {
	return &DriverHandler{drivers: drivers, wallets: wallets}
}

type registerDriverReq struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Vehicle driver.Vehicle `json:"vehicle"`
}

func (h *DriverHandler) Register(c *gin.Context) {
	var req registerDriverReq
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.drivers.Register(c.Request.Context(), driver.RegisterCommand{
		Name:    req.Name,
		Email:   req.Email,
		Vehicle: req.Vehicle,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

func (h *DriverHandler) Dashboard(c *gin.Context) {
	dash, err := h.drivers.Dashboard(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, dash)
}

type payoutReq struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *DriverHandler) RequestPayout(c *gin.Context) {
	var req payoutReq
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	d, err := h.drivers.Get(ctx, types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	p, err := h.wallets.RequestPayout(ctx, wallet.PayoutCommand{
		DriverID:   d.ID,
		DriverName: d.Name,
		Amount:     req.Amount,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.drivers.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"drivers": drivers})
}

func (h *DriverHandler) Approve(c *gin.Context) {
	d, err := h.drivers.Approve(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, d)
}
