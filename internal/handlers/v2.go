package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

// GetV2Pool returns the fxUSD base pool state
func (h *Handler) GetV2Pool(c *gin.Context) {
	resp, err := h.service.V2Pool(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetV2Position returns a leveraged position by id
func (h *Handler) GetV2Position(c *gin.Context) {
	positionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || positionID < 0 {
		models.HandleError(c, models.NewAppError(models.ErrMissingParameter,
			"position id must be a non-negative integer", err))
		return
	}

	resp, svcErr := h.service.V2Position(c.Request.Context(), positionID)
	if svcErr != nil {
		models.HandleError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetV2PoolManager returns the pool manager view of a pool
func (h *Handler) GetV2PoolManager(c *gin.Context) {
	resp, err := h.service.V2PoolManager(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetV2ReservePool returns reserve pool state for a collateral token
func (h *Handler) GetV2ReservePool(c *gin.Context) {
	resp, err := h.service.V2ReservePool(c.Request.Context(), c.Param("token_address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerV2Routes(group *gin.RouterGroup) {
	group.GET("/pool", h.GetV2Pool)
	group.GET("/position/:id", h.GetV2Position)
	group.GET("/pool-manager/:address", h.GetV2PoolManager)
	group.GET("/reserve-pool/:token_address", h.GetV2ReservePool)
}
