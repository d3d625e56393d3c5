// README: Surge lookups for riders and the admin pricing dashboard.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lagosride/internal/modules/pricing"
)

type PricingHandler struct {
	pricing *pricing.Service
}

func NewPricingHandler(svc *pricing.Service) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

// Surge handles GET /api/pricing/surge/:zone. Unknown zones quote neutral fares.
func (h *PricingHandler) Surge(c *gin.Context) {
	zone := c.Param("zone")
	res := h.pricing.ComputeSurge(zone)
	writeJSON(c, http.StatusOK, gin.H{
		"zone":       zone,
		"multiplier": res.Multiplier,
		"reason":     res.Reason,
	})
}

func (h *PricingHandler) Zones(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"zones": h.pricing.Zones()})
}

func (h *PricingHandler) Zone(c *gin.Context) {
	zone := c.Param("zone")
	state, ok := h.pricing.ZoneSnapshot(zone)
	if !ok {
		writeError(c, http.StatusNotFound, "zone not found")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"name":   zone,
		"demand": state.Demand,
		"supply": state.Supply,
		"surge":  h.pricing.ComputeSurge(zone),
	})
}

func (h *PricingHandler) Policy(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.pricing.Policy())
}

// UpdatePolicy handles PATCH /admin/pricing/policy; omitted fields keep their value.
func (h *PricingHandler) UpdatePolicy(c *gin.Context) {
	var req pricing.PolicyUpdate
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.pricing.UpdatePolicy(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
