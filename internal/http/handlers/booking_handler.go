// README: Bus search and seat booking.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lagosride/internal/modules/booking"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

func (h *BookingHandler) Locations(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"locations": h.booking.Locations()})
}

// Search handles GET /api/buses?from=&to=&date=.
func (h *BookingHandler) Search(c *gin.Context) {
	buses, err := h.booking.Search(c.Request.Context(), booking.SearchQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"buses": buses})
}

type bookSeatsReq struct {
	SeatIDs []string `json:"seat_ids"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Date    string   `json:"date"`
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req bookSeatsReq
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.booking.BookSeats(c.Request.Context(), booking.BookCommand{
		BusID:   c.Param("id"),
		SeatIDs: req.SeatIDs,
		From:    req.From,
		To:      req.To,
		Date:    req.Date,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}
