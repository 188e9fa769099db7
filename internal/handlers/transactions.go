package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/internal/services"
	"github.com/chrisstampar/fx-api/internal/validation"
)

// Broadcast submits a signed raw transaction
func (h *Handler) Broadcast(c *gin.Context) {
	var req models.BroadcastTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Broadcast(c.Request.Context(), req.RawTransaction)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTransactionStatus resolves the lifecycle state of a transaction
func (h *Handler) GetTransactionStatus(c *gin.Context) {
	resp, err := h.service.TransactionStatus(c.Request.Context(), c.Param("tx_hash"))
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// prepare runs a builder through the service and writes the unsigned
// transaction response
func (h *Handler) prepare(c *gin.Context, build services.TxBuilder) {
	resp, err := h.service.PrepareTx(c.Request.Context(), estimateFrom(c), build)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// checkAmount validates a human-readable amount and writes the error
// envelope on failure. allowZero also admits empty strings, used for
// optional min-out fields.
func checkAmount(c *gin.Context, amount string, allowZero bool) bool {
	if allowZero && amount == "" {
		return true
	}
	if _, err := validation.ValidateAmount(amount, allowZero); err != nil {
		models.HandleError(c, models.NewAppError(models.ErrInvalidAmount, err.Error(), err))
		return false
	}
	return true
}

func fromAddress(c *gin.Context) string {
	return c.Query("from_address")
}

// PrepareMintFToken builds an fToken mint
func (h *Handler) PrepareMintFToken(c *gin.Context) {
	var req models.MintFTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.BaseIn, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildMintFTokenTx(ctx, req.MarketAddress, req.BaseIn, req.Recipient, req.MinFTokenOut, from)
	})
}

// PrepareMintXToken builds an xToken mint
func (h *Handler) PrepareMintXToken(c *gin.Context) {
	var req models.MintXTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.BaseIn, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildMintXTokenTx(ctx, req.MarketAddress, req.BaseIn, req.Recipient, req.MinXTokenOut, from)
	})
}

// PrepareMintBoth builds a mint of both tokens
func (h *Handler) PrepareMintBoth(c *gin.Context) {
	var req models.MintBothTokensRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.BaseIn, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildMintBothTokensTx(ctx, req.MarketAddress, req.BaseIn, req.Recipient, req.MinFTokenOut, req.MinXTokenOut, from)
	})
}

// PrepareApprove builds an ERC-20 approval. The amount "max" approves
// the unlimited allowance.
func (h *Handler) PrepareApprove(c *gin.Context) {
	var req models.ApproveRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, true) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildApproveTx(ctx, req.TokenAddress, req.SpenderAddress, req.Amount, from)
	})
}

// PrepareTransfer builds an ERC-20 transfer
func (h *Handler) PrepareTransfer(c *gin.Context) {
	var req models.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildTransferTx(ctx, req.TokenAddress, req.RecipientAddress, req.Amount, from)
	})
}

// PrepareRebalancePoolDeposit builds a rebalance pool deposit
func (h *Handler) PrepareRebalancePoolDeposit(c *gin.Context) {
	var req models.RebalancePoolDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	pool := c.Param("pool")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRebalancePoolDepositTx(ctx, pool, req.Amount, req.Recipient, from)
	})
}

// PrepareRebalancePoolWithdraw builds a rebalance pool withdrawal
func (h *Handler) PrepareRebalancePoolWithdraw(c *gin.Context) {
	var req models.RebalancePoolWithdrawRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	claimRewards := req.ClaimRewards != nil && *req.ClaimRewards
	pool := c.Param("pool")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRebalancePoolWithdrawTx(ctx, pool, claimRewards, from)
	})
}

// PrepareRebalancePoolUnlock builds a rebalance pool unlock
func (h *Handler) PrepareRebalancePoolUnlock(c *gin.Context) {
	var req models.RebalancePoolUnlockRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	pool := c.Param("pool")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRebalancePoolUnlockTx(ctx, pool, req.Amount, from)
	})
}

// PrepareRebalancePoolClaim builds a rebalance pool reward claim
func (h *Handler) PrepareRebalancePoolClaim(c *gin.Context) {
	var req models.RebalancePoolClaimRequest
	if !bindJSON(c, &req) {
		return
	}
	pool := c.Param("pool")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRebalancePoolClaimTx(ctx, pool, req.Tokens, from)
	})
}

// PrepareSavingsDeposit builds an fxUSD savings deposit
func (h *Handler) PrepareSavingsDeposit(c *gin.Context) {
	var req models.SavingsDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildSavingsDepositTx(ctx, req.Amount, from)
	})
}

// PrepareSavingsRedeem builds an fxSAVE redemption
func (h *Handler) PrepareSavingsRedeem(c *gin.Context) {
	var req models.SavingsRedeemRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildSavingsRedeemTx(ctx, req.Amount, from)
	})
}

// PrepareStabilityPoolDeposit builds a stability pool deposit
func (h *Handler) PrepareStabilityPoolDeposit(c *gin.Context) {
	var req models.StabilityPoolDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildStabilityPoolDepositTx(ctx, req.Amount, from)
	})
}

// PrepareStabilityPoolWithdraw builds a stability pool withdrawal
func (h *Handler) PrepareStabilityPoolWithdraw(c *gin.Context) {
	var req models.StabilityPoolWithdrawRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, true) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildStabilityPoolWithdrawTx(ctx, req.Amount, from)
	})
}

// PrepareVestingClaim builds a vested FXN claim
func (h *Handler) PrepareVestingClaim(c *gin.Context) {
	token := c.Param("token")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildVestingClaimTx(ctx, token, from)
	})
}

// PrepareHarvestPool builds a pool manager harvest
func (h *Handler) PrepareHarvestPool(c *gin.Context) {
	pool := c.Param("pool")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildHarvestPoolManagerTx(ctx, pool, from)
	})
}

// PrepareHarvestTreasury builds a treasury harvest
func (h *Handler) PrepareHarvestTreasury(c *gin.Context) {
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildHarvestTreasuryTx(ctx, from)
	})
}

// PrepareRequestBonus builds a reserve pool bonus claim
func (h *Handler) PrepareRequestBonus(c *gin.Context) {
	var req models.RequestBonusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRequestBonusTx(ctx, req.TokenAddress, req.Amount, req.Recipient, from)
	})
}

func positionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		models.HandleError(c, models.NewAppError(models.ErrMissingParameter,
			"position id must be a non-negative integer", err))
		return 0, false
	}
	return id, true
}

// PrepareOperatePosition builds a position adjustment. Collateral and
// debt deltas are signed; negative values withdraw or repay.
func (h *Handler) PrepareOperatePosition(c *gin.Context) {
	id, ok := positionID(c)
	if !ok {
		return
	}
	var req models.OperatePositionRequest
	if !bindJSON(c, &req) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildOperatePositionTx(ctx, req.PoolAddress, id, req.NewCollateral, req.NewDebt, from)
	})
}

// PrepareRebalancePosition builds a position rebalance
func (h *Handler) PrepareRebalancePosition(c *gin.Context) {
	id, ok := positionID(c)
	if !ok {
		return
	}
	var req models.RebalancePositionRequest
	if !bindJSON(c, &req) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRebalancePositionTx(ctx, req.PoolAddress, id, req.Receiver, from)
	})
}

// PrepareLiquidatePosition builds a position liquidation
func (h *Handler) PrepareLiquidatePosition(c *gin.Context) {
	id, ok := positionID(c)
	if !ok {
		return
	}
	var req models.LiquidatePositionRequest
	if !bindJSON(c, &req) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildLiquidatePositionTx(ctx, req.PoolAddress, id, req.Receiver, from)
	})
}

// PrepareGaugeVote builds a gauge weight vote. Weight is on a 0 to 1
// scale.
func (h *Handler) PrepareGaugeVote(c *gin.Context) {
	var req models.GaugeVoteRequest
	if !bindJSON(c, &req) {
		return
	}
	gauge := c.Param("address")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildGaugeVoteTx(ctx, gauge, req.Weight, from)
	})
}

// PrepareGaugeClaim builds a gauge reward claim
func (h *Handler) PrepareGaugeClaim(c *gin.Context) {
	gauge := c.Param("address")
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildGaugeClaimTx(ctx, gauge, from)
	})
}

// PrepareClaimAllGaugeRewards builds one claim per gauge. Without an
// explicit gauge list the known f(x) gauges are used.
func (h *Handler) PrepareClaimAllGaugeRewards(c *gin.Context) {
	var req models.ClaimAllGaugeRewardsRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	gauges := req.GaugeAddresses
	if len(gauges) == 0 {
		gauges = sdk.KnownGauges
	}
	from := fromAddress(c)

	builds := make([]services.TxBuilder, 0, len(gauges))
	for _, gauge := range gauges {
		gauge := gauge
		builds = append(builds, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
			return client.BuildGaugeClaimTx(ctx, gauge, from)
		})
	}

	resp, err := h.service.PrepareTxs(c.Request.Context(), estimateFrom(c), builds)
	if err != nil {
		models.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PrepareVeFXNDeposit builds an FXN lock into veFXN
func (h *Handler) PrepareVeFXNDeposit(c *gin.Context) {
	var req models.VeFxnDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildVeFXNDepositTx(ctx, req.Amount, req.UnlockTime, from)
	})
}

// PrepareMintViaTreasury builds a treasury mint
func (h *Handler) PrepareMintViaTreasury(c *gin.Context) {
	var req models.MintViaTreasuryRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.BaseIn, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildMintViaTreasuryTx(ctx, req.BaseIn, req.Recipient, req.Option, from)
	})
}

// PrepareMintViaGateway builds an ETH gateway mint
func (h *Handler) PrepareMintViaGateway(c *gin.Context) {
	var req models.MintViaGatewayRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.AmountETH, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildMintViaGatewayTx(ctx, req.AmountETH, req.MinTokenOut, req.TokenType, from)
	})
}

// PrepareRedeem builds a market redemption
func (h *Handler) PrepareRedeem(c *gin.Context) {
	var req models.RedeemRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.FTokenIn, true) || !checkAmount(c, req.XTokenIn, true) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRedeemTx(ctx, req.MarketAddress, req.FTokenIn, req.XTokenIn, req.Recipient, req.MinBaseOut, from)
	})
}

// PrepareRedeemViaTreasury builds a treasury redemption
func (h *Handler) PrepareRedeemViaTreasury(c *gin.Context) {
	var req models.RedeemViaTreasuryRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.FTokenIn, true) || !checkAmount(c, req.XTokenIn, true) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildRedeemViaTreasuryTx(ctx, req.FTokenIn, req.XTokenIn, req.Owner, from)
	})
}

// PrepareSwap builds a converter swap
func (h *Handler) PrepareSwap(c *gin.Context) {
	var req models.SwapRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.AmountIn, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildSwapTx(ctx, req.TokenIn, req.AmountIn, req.Encoding, req.Routes, from)
	})
}

// PrepareFlashLoan builds a flash loan
func (h *Handler) PrepareFlashLoan(c *gin.Context) {
	var req models.FlashLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkAmount(c, req.Amount, false) {
		return
	}
	from := fromAddress(c)
	h.prepare(c, func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return client.BuildFlashLoanTx(ctx, req.TokenAddress, req.Amount, req.Receiver, req.Data, from)
	})
}

func (h *Handler) registerTransactionRoutes(group *gin.RouterGroup) {
	group.POST("/broadcast", h.Broadcast)
	group.GET("/:tx_hash/status", h.GetTransactionStatus)

	group.POST("/mint-ftoken/prepare", h.PrepareMintFToken)
	group.POST("/mint-xtoken/prepare", h.PrepareMintXToken)
	group.POST("/mint-both/prepare", h.PrepareMintBoth)
	group.POST("/approve/prepare", h.PrepareApprove)
	group.POST("/transfer/prepare", h.PrepareTransfer)

	group.POST("/rebalance-pool/:pool/deposit/prepare", h.PrepareRebalancePoolDeposit)
	group.POST("/rebalance-pool/:pool/withdraw/prepare", h.PrepareRebalancePoolWithdraw)
	group.POST("/rebalance-pool/:pool/unlock/prepare", h.PrepareRebalancePoolUnlock)
	group.POST("/rebalance-pool/:pool/claim/prepare", h.PrepareRebalancePoolClaim)

	group.POST("/savings/deposit/prepare", h.PrepareSavingsDeposit)
	group.POST("/savings/redeem/prepare", h.PrepareSavingsRedeem)
	group.POST("/stability-pool/deposit/prepare", h.PrepareStabilityPoolDeposit)
	group.POST("/stability-pool/withdraw/prepare", h.PrepareStabilityPoolWithdraw)

	group.POST("/vesting/:token/claim/prepare", h.PrepareVestingClaim)
	group.POST("/pool/:pool/harvest/prepare", h.PrepareHarvestPool)
	group.POST("/treasury/harvest/prepare", h.PrepareHarvestTreasury)
	group.POST("/reserve-pool/request-bonus/prepare", h.PrepareRequestBonus)

	group.POST("/v2/position/:id/operate/prepare", h.PrepareOperatePosition)
	group.POST("/v2/position/:id/rebalance/prepare", h.PrepareRebalancePosition)
	group.POST("/v2/position/:id/liquidate/prepare", h.PrepareLiquidatePosition)

	group.POST("/gauge/:address/vote/prepare", h.PrepareGaugeVote)
	group.POST("/gauge/:address/claim/prepare", h.PrepareGaugeClaim)
	group.POST("/gauges/claim-all/prepare", h.PrepareClaimAllGaugeRewards)

	group.POST("/vefxn/deposit/prepare", h.PrepareVeFXNDeposit)
	group.POST("/treasury/mint/prepare", h.PrepareMintViaTreasury)
	group.POST("/gateway/mint/prepare", h.PrepareMintViaGateway)
	group.POST("/redeem/prepare", h.PrepareRedeem)
	group.POST("/treasury/redeem/prepare", h.PrepareRedeemViaTreasury)
	group.POST("/swap/prepare", h.PrepareSwap)
	group.POST("/flash-loan/prepare", h.PrepareFlashLoan)
}
