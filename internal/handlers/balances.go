package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/services"
)

const maxBatchAddresses = 100

// GetAllBalances returns every supported token balance for an address
func (h *Handler) GetAllBalances(c *gin.Context) {
	resp, _, err := h.service.AllBalances(c.Request.Context(), c.Param("address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTokenBalance returns a single registry token balance. The token
// symbol is bound at route registration.
func (h *Handler) GetTokenBalance(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.TokenBalance(c.Request.Context(), c.Param("address"), token)
		if err != nil {
			models.HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetTokenBalanceByAddress returns the balance of an arbitrary ERC-20
func (h *Handler) GetTokenBalanceByAddress(c *gin.Context) {
	resp, err := h.service.TokenBalanceByAddress(c.Request.Context(),
		c.Param("address"), c.Param("token_address"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BatchBalances resolves balances for up to 100 addresses at once
func (h *Handler) BatchBalances(c *gin.Context) {
	var req models.BatchBalancesRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Addresses) == 0 || len(req.Addresses) > maxBatchAddresses {
		models.HandleError(c, models.NewAppError(models.ErrValidation,
			fmt.Sprintf("addresses must contain between 1 and %d entries", maxBatchAddresses), nil))
		return
	}

	resp, err := h.service.BatchBalances(c.Request.Context(), req.Addresses)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerBalanceRoutes wires the balances group, including the static
// per-token convenience routes. Batch fan-out counts against the write
// tier.
func (h *Handler) registerBalanceRoutes(group *gin.RouterGroup, read, write gin.HandlerFunc) {
	group.GET("/:address", read, h.GetAllBalances)
	group.GET("/:address/token/:token_address", read, h.GetTokenBalanceByAddress)
	group.POST("/batch", write, h.BatchBalances)

	for _, token := range services.SupportedTokenNames() {
		group.GET("/:address/"+token, read, h.GetTokenBalance(token))
	}
}
