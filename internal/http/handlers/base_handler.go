// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lagosride/internal/modules/aiusage"
	"lagosride/internal/modules/booking"
	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/ride"
	"lagosride/internal/modules/tripplanner"
	"lagosride/internal/modules/wallet"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// statusFor maps module sentinels to HTTP statuses; anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ride.ErrBadRequest),
		errors.Is(err, booking.ErrBadRequest),
		errors.Is(err, driver.ErrBadRequest),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, tripplanner.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ride.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, driver.ErrNotFound),
		errors.Is(err, wallet.ErrNotFound),
		errors.Is(err, wallet.ErrPayoutNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrSeatUnavailable),
		errors.Is(err, ride.ErrQuoteExpired),
		errors.Is(err, wallet.ErrInsufficientFunds),
		errors.Is(err, wallet.ErrPayoutNotPending):
		return http.StatusConflict
	case errors.Is(err, aiusage.ErrQuotaExhausted):
		return http.StatusTooManyRequests
	case errors.Is(err, tripplanner.ErrAssistantFailed):
		return http.StatusBadGateway
	case errors.Is(err, ride.ErrNoDriverAvailable),
		errors.Is(err, tripplanner.ErrAssistantUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		writeError(c, status, "internal error")
		return
	}
	writeError(c, status, err.Error())
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
