package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

// GetConvexPools lists the tracked Convex pools, paginated via the page
// and limit query parameters
func (h *Handler) GetConvexPools(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		models.HandleError(c, models.NewAppError(models.ErrInvalidPagination,
			"page must be an integer", nil))
		return
	}
	limit, ok := intQuery(c, "limit", 10)
	if !ok {
		models.HandleError(c, models.NewAppError(models.ErrInvalidPagination,
			"limit must be an integer", nil))
		return
	}

	resp, err := h.service.ConvexPools(page, limit)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetConvexPool returns one Convex pool with its on-chain TVL
func (h *Handler) GetConvexPool(c *gin.Context) {
	poolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		models.HandleError(c, models.NewAppError(models.ErrMissingParameter,
			"pool id must be an integer", err))
		return
	}

	resp, svcErr := h.service.ConvexPool(c.Request.Context(), poolID)
	if svcErr != nil {
		models.HandleError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetConvexUserVaults lists a user's vaults across the tracked pools
func (h *Handler) GetConvexUserVaults(c *gin.Context) {
	resp, err := h.service.ConvexUserVaults(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetConvexVault returns a single Convex vault's state
func (h *Handler) GetConvexVault(c *gin.Context) {
	resp, err := h.service.ConvexVault(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetConvexVaultBalance returns just the staked balance of a vault
func (h *Handler) GetConvexVaultBalance(c *gin.Context) {
	resp, err := h.service.ConvexVault(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vault_address":  resp.VaultAddress,
		"staked_balance": resp.StakedBalance,
		"staked_token":   resp.StakedToken,
	})
}

// GetConvexVaultRewards returns pending rewards for a Convex vault
func (h *Handler) GetConvexVaultRewards(c *gin.Context) {
	resp, err := h.service.ConvexVaultRewards(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerConvexRoutes(group *gin.RouterGroup) {
	group.GET("/pools", h.GetConvexPools)
	group.GET("/pool/:id", h.GetConvexPool)
	group.GET("/vaults/:address", h.GetConvexUserVaults)
	group.GET("/vault/:address", h.GetConvexVault)
	group.GET("/vault/:address/balance", h.GetConvexVaultBalance)
	group.GET("/vault/:address/rewards", h.GetConvexVaultRewards)
}
