// README: Trip assistant handler (quota-guarded Gemini parsing).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lagosride/internal/http/middleware"
	"lagosride/internal/modules/tripplanner"
)

const assistantTimeout = 10 * time.Second

type AssistantHandler struct {
	planner *tripplanner.Service
}

func NewAssistantHandler(svc *tripplanner.Service) *AssistantHandler {
	return &AssistantHandler{planner: svc}
}

type tripQueryReq struct {
	Query string `json:"query"`
}

// ParseTrip handles POST /api/assistant/trip.
func (h *AssistantHandler) ParseTrip(c *gin.Context) {
	var req tripQueryReq
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	trip, err := h.planner.Parse(ctx, tripplanner.ParseCommand{
		ClientID: middleware.ClientID(c),
		Query:    req.Query,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trip)
}
