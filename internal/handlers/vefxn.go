package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

// GetVeFXNInfo returns a user's veFXN lock state
func (h *Handler) GetVeFXNInfo(c *gin.Context) {
	resp, err := h.service.VeFXNInfo(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerVeFXNRoutes(group *gin.RouterGroup) {
	group.GET("/:address/info", h.GetVeFXNInfo)
}
