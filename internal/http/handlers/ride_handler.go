// README: Ride option quotes and ride requests.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lagosride/internal/modules/pricing"
	"lagosride/internal/modules/ride"
	"lagosride/internal/types"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(svc *ride.Service) *RideHandler {
	return &RideHandler{rides: svc}
}

type rideOptionsReq struct {
	Pickup      string       `json:"pickup"`
	PickupPoint *types.Point `json:"pickup_point"`
	Destination string       `json:"destination"`
}

func (h *RideHandler) Options(c *gin.Context) {
	var req rideOptionsReq
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.rides.Options(c.Request.Context(), ride.OptionsQuery{
		Pickup:      req.Pickup,
		PickupPoint: req.PickupPoint,
		Destination: req.Destination,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// Only ride_option.id is read; prices always come from the stored quote.
type rideRequestReq struct {
	QuoteID types.ID `json:"quote_id"`
	Option  struct {
		ID pricing.Tier `json:"id"`
	} `json:"ride_option"`
}

func (h *RideHandler) Request(c *gin.Context) {
	var req rideRequestReq
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.rides.Request(c.Request.Context(), ride.RequestCommand{
		QuoteID:  req.QuoteID,
		OptionID: req.Option.ID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RideHandler) Get(c *gin.Context) {
	r, err := h.rides.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}
