package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

// GetCurvePools lists the tracked Curve pools
func (h *Handler) GetCurvePools(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CurvePools())
}

// GetCurvePool returns a Curve pool's on-chain state
func (h *Handler) GetCurvePool(c *gin.Context) {
	resp, err := h.service.CurvePool(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// userQuery reads the required user query parameter
func userQuery(c *gin.Context) (string, bool) {
	user := c.Query("user")
	if user == "" {
		models.HandleError(c, models.NewAppError(models.ErrMissingParameter,
			"user query parameter is required", nil))
		return "", false
	}
	return user, true
}

// GetCurveGaugeBalance returns a user's staked balance in a Curve gauge
func (h *Handler) GetCurveGaugeBalance(c *gin.Context) {
	user, ok := userQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.CurveGaugeBalance(c.Request.Context(), c.Param("gauge_address"), user)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurveGaugeRewards lists a user's claimable rewards on a Curve gauge
func (h *Handler) GetCurveGaugeRewards(c *gin.Context) {
	user, ok := userQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.CurveGaugeRewards(c.Request.Context(), c.Param("gauge_address"), user)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerCurveRoutes(group *gin.RouterGroup) {
	group.GET("/pools", h.GetCurvePools)
	group.GET("/pool/:address", h.GetCurvePool)
	group.GET("/gauge/:gauge_address/balance", h.GetCurveGaugeBalance)
	group.GET("/gauge/:gauge_address/rewards", h.GetCurveGaugeRewards)
}
