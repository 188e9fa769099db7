package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

// GetGaugeWeight returns the absolute controller weight of a gauge
func (h *Handler) GetGaugeWeight(c *gin.Context) {
	weight, err := h.service.GaugeWeight(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gauge_address": c.Param("address"),
		"weight":        weight,
	})
}

// GetGaugeRelativeWeight returns the normalized controller weight
func (h *Handler) GetGaugeRelativeWeight(c *gin.Context) {
	weight, err := h.service.GaugeRelativeWeight(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gauge_address":   c.Param("address"),
		"relative_weight": weight,
	})
}

// GetGaugeRewards lists a user's claimable rewards on one gauge
func (h *Handler) GetGaugeRewards(c *gin.Context) {
	resp, err := h.service.GaugeRewards(c.Request.Context(), c.Param("address"), c.Param("user"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetGaugesOverview summarizes a user's stake across the known gauges
func (h *Handler) GetGaugesOverview(c *gin.Context) {
	resp, err := h.service.GaugesOverview(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerGaugeRoutes(group *gin.RouterGroup) {
	group.GET("/:address/weight", h.GetGaugeWeight)
	group.GET("/:address/relative-weight", h.GetGaugeRelativeWeight)
	group.GET("/:address/rewards/:user", h.GetGaugeRewards)
	group.GET("/:address/all", h.GetGaugesOverview)
}
