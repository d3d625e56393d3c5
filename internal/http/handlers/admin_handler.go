package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lagosride/internal/modules/admin"
)

type AdminHandler struct {
	admin *admin.Service
}

func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{admin: svc}
}

func (h *AdminHandler) Overview(c *gin.Context) {
	o, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, o)
}

func (h *AdminHandler) TripLogs(c *gin.Context) {
	logs, err := h.admin.TripLogs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": logs})
}
