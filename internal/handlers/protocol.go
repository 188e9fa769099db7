package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
)

const maxBatchNavTokens = 20

// GetProtocolNAV returns the protocol NAV triple
func (h *Handler) GetProtocolNAV(c *gin.Context) {
	resp, err := h.service.ProtocolNAV(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTokenNAV returns the NAV of one f/x token
func (h *Handler) GetTokenNAV(c *gin.Context) {
	resp, err := h.service.TokenNAV(c.Request.Context(), c.Param("token"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BatchNAV resolves NAV for up to 20 tokens at once
func (h *Handler) BatchNAV(c *gin.Context) {
	var req models.BatchNavRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Tokens) == 0 || len(req.Tokens) > maxBatchNavTokens {
		models.HandleError(c, models.NewAppError(models.ErrValidation,
			fmt.Sprintf("tokens must contain between 1 and %d entries", maxBatchNavTokens), nil))
		return
	}

	resp, err := h.service.BatchNAV(c.Request.Context(), req.Tokens)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPoolInfo returns pool manager capacities for a pool
func (h *Handler) GetPoolInfo(c *gin.Context) {
	resp, err := h.service.PoolInfo(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMarketInfo returns the state of a V1 market
func (h *Handler) GetMarketInfo(c *gin.Context) {
	resp, err := h.service.MarketInfo(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTreasuryInfo returns the stETH treasury state
func (h *Handler) GetTreasuryInfo(c *gin.Context) {
	resp, err := h.service.TreasuryInfo(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetV1NAV returns the V1 market NAV pair
func (h *Handler) GetV1NAV(c *gin.Context) {
	resp, err := h.service.V1NAV(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetV1CollateralRatio returns the V1 treasury collateral ratio
func (h *Handler) GetV1CollateralRatio(c *gin.Context) {
	ratio, err := h.service.V1CollateralRatio(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collateral_ratio": ratio})
}

// GetV1RebalancePools lists the registered V1 rebalance pools
func (h *Handler) GetV1RebalancePools(c *gin.Context) {
	pools, err := h.service.V1RebalancePools(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rebalance_pools": pools, "count": len(pools)})
}

// GetRebalancePoolBalances returns a user's rebalance pool state
func (h *Handler) GetRebalancePoolBalances(c *gin.Context) {
	resp, err := h.service.RebalancePoolBalances(c.Request.Context(),
		c.Param("pool"), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStETHPrice returns the treasury's stETH price
func (h *Handler) GetStETHPrice(c *gin.Context) {
	price, err := h.service.StETHPrice(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steth_price": price})
}

// GetFxUSDSupply returns the fxUSD total supply
func (h *Handler) GetFxUSDSupply(c *gin.Context) {
	supply, err := h.service.FxUSDSupply(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_supply": supply})
}

// GetPegKeeper returns the fxUSD peg keeper state
func (h *Handler) GetPegKeeper(c *gin.Context) {
	resp, err := h.service.PegKeeper(c.Request.Context())
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) registerProtocolRoutes(group *gin.RouterGroup, read, write gin.HandlerFunc) {
	group.GET("/nav", read, h.GetProtocolNAV)
	group.GET("/nav/:token", read, h.GetTokenNAV)
	group.POST("/nav/batch", write, h.BatchNAV)
	group.GET("/pool-info/:address", read, h.GetPoolInfo)
	group.GET("/market-info/:address", read, h.GetMarketInfo)
	group.GET("/treasury-info", read, h.GetTreasuryInfo)
	group.GET("/v1/nav", read, h.GetV1NAV)
	group.GET("/v1/collateral-ratio", read, h.GetV1CollateralRatio)
	group.GET("/v1/rebalance-pools", read, h.GetV1RebalancePools)
	group.GET("/v1/rebalance-pool/:pool/balances/:address", read, h.GetRebalancePoolBalances)
	group.GET("/steth-price", read, h.GetStETHPrice)
	group.GET("/fxusd/supply", read, h.GetFxUSDSupply)
	group.GET("/peg-keeper", read, h.GetPegKeeper)
}
