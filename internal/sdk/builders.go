package sdk

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// BuildMintFTokenTx prepares a market fToken mint
func (c *Client) BuildMintFTokenTx(ctx context.Context, marketAddress, baseIn, recipient, minFTokenOut, from string) (*TxData, error) {
	baseInWei, err := toWei(baseIn)
	if err != nil {
		return nil, err
	}
	minOutWei, err := toWeiOrZero(minFTokenOut)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, marketAddress, marketABI, nil, DefaultGasLimit,
		"mintFToken", baseInWei, addressOrDefault(recipient, from), minOutWei)
}

// BuildMintXTokenTx prepares a market xToken mint
func (c *Client) BuildMintXTokenTx(ctx context.Context, marketAddress, baseIn, recipient, minXTokenOut, from string) (*TxData, error) {
	baseInWei, err := toWei(baseIn)
	if err != nil {
		return nil, err
	}
	minOutWei, err := toWeiOrZero(minXTokenOut)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, marketAddress, marketABI, nil, DefaultGasLimit,
		"mintXToken", baseInWei, addressOrDefault(recipient, from), minOutWei)
}

// BuildMintBothTokensTx prepares a market mint of both tokens
func (c *Client) BuildMintBothTokensTx(ctx context.Context, marketAddress, baseIn, recipient, minFTokenOut, minXTokenOut, from string) (*TxData, error) {
	baseInWei, err := toWei(baseIn)
	if err != nil {
		return nil, err
	}
	minFWei, err := toWeiOrZero(minFTokenOut)
	if err != nil {
		return nil, err
	}
	minXWei, err := toWeiOrZero(minXTokenOut)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, marketAddress, marketABI, nil, DefaultGasLimit,
		"mint", baseInWei, addressOrDefault(recipient, from), minFWei, minXWei)
}

// BuildApproveTx prepares an ERC-20 approval
func (c *Client) BuildApproveTx(ctx context.Context, tokenAddress, spender, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, tokenAddress, erc20ABI, nil, DefaultTransferGasLimit,
		"approve", common.HexToAddress(spender), amountWei)
}

// BuildTransferTx prepares an ERC-20 transfer
func (c *Client) BuildTransferTx(ctx context.Context, tokenAddress, recipient, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, tokenAddress, erc20ABI, nil, DefaultTransferGasLimit,
		"transfer", common.HexToAddress(recipient), amountWei)
}

// BuildRebalancePoolDepositTx prepares a V1 rebalance pool deposit
func (c *Client) BuildRebalancePoolDepositTx(ctx context.Context, poolAddress, amount, recipient, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, poolAddress, rebalancePoolABI, nil, DefaultGasLimit,
		"deposit", amountWei, addressOrDefault(recipient, from))
}

// BuildRebalancePoolWithdrawTx prepares a V1 rebalance pool unlocked
// withdrawal
func (c *Client) BuildRebalancePoolWithdrawTx(ctx context.Context, poolAddress string, claimRewards bool, from string) (*TxData, error) {
	return c.packAndBuild(ctx, from, poolAddress, rebalancePoolABI, nil, DefaultGasLimit,
		"withdrawUnlocked", false, claimRewards)
}

// BuildRebalancePoolUnlockTx prepares a V1 rebalance pool unlock
func (c *Client) BuildRebalancePoolUnlockTx(ctx context.Context, poolAddress, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, poolAddress, rebalancePoolABI, nil, DefaultGasLimit,
		"unlock", amountWei)
}

// BuildRebalancePoolClaimTx prepares a V1 rebalance pool reward claim
func (c *Client) BuildRebalancePoolClaimTx(ctx context.Context, poolAddress string, tokens []string, from string) (*TxData, error) {
	addrs := make([]common.Address, 0, len(tokens))
	for _, t := range tokens {
		addrs = append(addrs, common.HexToAddress(t))
	}
	return c.packAndBuild(ctx, from, poolAddress, rebalancePoolABI, nil, DefaultGasLimit,
		"claim", addrs)
}

// BuildSavingsDepositTx prepares an fxUSD deposit into fxSAVE
func (c *Client) BuildSavingsDepositTx(ctx context.Context, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, SavingFxUSD, basePoolABI, nil, DefaultGasLimit,
		"deposit", amountWei, addressOrDefault("", from))
}

// BuildSavingsRedeemTx prepares an fxSAVE redemption
func (c *Client) BuildSavingsRedeemTx(ctx context.Context, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	owner := addressOrDefault("", from)
	return c.packAndBuild(ctx, from, SavingFxUSD, basePoolABI, nil, DefaultGasLimit,
		"redeem", amountWei, owner, owner)
}

// BuildStabilityPoolDepositTx prepares a stability pool deposit
func (c *Client) BuildStabilityPoolDepositTx(ctx context.Context, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, StabilityPool, stabilityPoolABI, nil, DefaultGasLimit,
		"deposit", amountWei, addressOrDefault("", from))
}

// BuildStabilityPoolWithdrawTx prepares a stability pool withdrawal
func (c *Client) BuildStabilityPoolWithdrawTx(ctx context.Context, amount, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, StabilityPool, stabilityPoolABI, nil, DefaultGasLimit,
		"withdraw", amountWei)
}

// BuildVestingClaimTx prepares a vesting claim. Only FXN vesting is
// deployed on mainnet.
func (c *Client) BuildVestingClaimTx(ctx context.Context, tokenType, from string) (*TxData, error) {
	if !strings.EqualFold(tokenType, "fxn") {
		return nil, fmt.Errorf("unsupported vesting token type: %s", tokenType)
	}
	return c.packAndBuild(ctx, from, VestingFXN, vestingABI, nil, DefaultTransferGasLimit, "claim")
}

// BuildHarvestPoolManagerTx prepares a pool manager harvest
func (c *Client) BuildHarvestPoolManagerTx(ctx context.Context, poolAddress, from string) (*TxData, error) {
	return c.packAndBuild(ctx, from, PoolManager, poolManagerABI, nil, DefaultGasLimit,
		"harvest", common.HexToAddress(poolAddress))
}

// BuildHarvestTreasuryTx prepares a treasury harvest
func (c *Client) BuildHarvestTreasuryTx(ctx context.Context, from string) (*TxData, error) {
	return c.packAndBuild(ctx, from, StETHTreasury, treasuryABI, nil, DefaultGasLimit, "harvest")
}

// BuildRequestBonusTx prepares a reserve pool bonus request
func (c *Client) BuildRequestBonusTx(ctx context.Context, tokenAddress, amount, recipient, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, ReservePool, reservePoolABI, nil, DefaultGasLimit,
		"requestBonus", common.HexToAddress(tokenAddress), addressOrDefault(recipient, from), amountWei)
}

// BuildOperatePositionTx prepares a position collateral/debt adjustment.
// Amounts may be negative to withdraw or repay.
func (c *Client) BuildOperatePositionTx(ctx context.Context, poolAddress string, positionID int64, newCollateral, newDebt, from string) (*TxData, error) {
	collWei, err := toSignedWei(newCollateral)
	if err != nil {
		return nil, err
	}
	debtWei, err := toSignedWei(newDebt)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, PoolManager, poolManagerABI, nil, DefaultGasLimit,
		"operate", common.HexToAddress(poolAddress), big.NewInt(positionID), collWei, debtWei)
}

// BuildRebalancePositionTx prepares a position rebalance
func (c *Client) BuildRebalancePositionTx(ctx context.Context, poolAddress string, positionID int64, receiver, from string) (*TxData, error) {
	return c.packAndBuild(ctx, from, PoolManager, poolManagerABI, nil, DefaultGasLimit,
		"rebalance", common.HexToAddress(poolAddress), addressOrDefault(receiver, from), big.NewInt(positionID))
}

// BuildLiquidatePositionTx prepares a position liquidation
func (c *Client) BuildLiquidatePositionTx(ctx context.Context, poolAddress string, positionID int64, receiver, from string) (*TxData, error) {
	return c.packAndBuild(ctx, from, PoolManager, poolManagerABI, nil, DefaultGasLimit,
		"liquidate", common.HexToAddress(poolAddress), addressOrDefault(receiver, from), big.NewInt(positionID))
}

// BuildGaugeVoteTx prepares a gauge weight vote. Weight is on a 0-1 scale
// and maps to the controller's basis points.
func (c *Client) BuildGaugeVoteTx(ctx context.Context, gaugeAddress, weight, from string) (*TxData, error) {
	w, err := decimal.NewFromString(strings.TrimSpace(weight))
	if err != nil || w.IsNegative() || w.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("invalid vote weight %q: must be between 0 and 1", weight)
	}
	basisPoints := w.Shift(4).BigInt()
	return c.packAndBuild(ctx, from, GaugeController, gaugeControllerABI, nil, DefaultGasLimit,
		"vote_for_gauge_weights", common.HexToAddress(gaugeAddress), basisPoints)
}

// BuildGaugeClaimTx prepares a gauge reward claim for an account
func (c *Client) BuildGaugeClaimTx(ctx context.Context, gaugeAddress, account string) (*TxData, error) {
	return c.packAndBuild(ctx, account, gaugeAddress, gaugeABI, nil, DefaultGasLimit,
		"claim_rewards", addressOrDefault("", account))
}

// BuildVeFXNDepositTx prepares an FXN lock into veFXN
func (c *Client) BuildVeFXNDepositTx(ctx context.Context, amount string, unlockTime int64, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, VEFXN, veFXNABI, nil, DefaultGasLimit,
		"create_lock", amountWei, big.NewInt(unlockTime))
}

// BuildMintViaTreasuryTx prepares a treasury mint. Option 0 mints both
// tokens, 1 mints fToken only, 2 mints xToken only.
func (c *Client) BuildMintViaTreasuryTx(ctx context.Context, baseIn, recipient string, option int, from string) (*TxData, error) {
	if option < 0 || option > 2 {
		return nil, fmt.Errorf("invalid mint option %d: must be 0, 1 or 2", option)
	}
	baseInWei, err := toWei(baseIn)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, StETHTreasury, treasuryABI, nil, DefaultGasLimit,
		"mint", baseInWei, addressOrDefault(recipient, from), uint8(option))
}

// BuildMintViaGatewayTx prepares an ETH mint through the gateway
func (c *Client) BuildMintViaGatewayTx(ctx context.Context, amountETH, minTokenOut, tokenType, from string) (*TxData, error) {
	valueWei, err := toWei(amountETH)
	if err != nil {
		return nil, err
	}
	minOutWei, err := toWeiOrZero(minTokenOut)
	if err != nil {
		return nil, err
	}

	var method string
	switch strings.ToLower(tokenType) {
	case "f":
		method = "mintFToken"
	case "x":
		method = "mintXToken"
	default:
		return nil, fmt.Errorf("invalid token type %q: must be 'f' or 'x'", tokenType)
	}

	return c.packAndBuild(ctx, from, FETHGateway, gatewayABI, valueWei, DefaultGasLimit,
		method, minOutWei)
}

// BuildRedeemTx prepares a market redemption
func (c *Client) BuildRedeemTx(ctx context.Context, marketAddress, fTokenIn, xTokenIn, recipient, minBaseOut, from string) (*TxData, error) {
	fInWei, err := toWeiOrZero(fTokenIn)
	if err != nil {
		return nil, err
	}
	xInWei, err := toWeiOrZero(xTokenIn)
	if err != nil {
		return nil, err
	}
	minOutWei, err := toWeiOrZero(minBaseOut)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, marketAddress, marketABI, nil, DefaultGasLimit,
		"redeem", fInWei, xInWei, addressOrDefault(recipient, from), minOutWei)
}

// BuildRedeemViaTreasuryTx prepares a treasury redemption
func (c *Client) BuildRedeemViaTreasuryTx(ctx context.Context, fTokenIn, xTokenIn, owner, from string) (*TxData, error) {
	fInWei, err := toWeiOrZero(fTokenIn)
	if err != nil {
		return nil, err
	}
	xInWei, err := toWeiOrZero(xTokenIn)
	if err != nil {
		return nil, err
	}
	return c.packAndBuild(ctx, from, StETHTreasury, treasuryABI, nil, DefaultGasLimit,
		"redeem", fInWei, xInWei, addressOrDefault(owner, from))
}

// BuildSwapTx prepares a converter swap
func (c *Client) BuildSwapTx(ctx context.Context, tokenIn, amountIn string, encoding int64, routes []int64, from string) (*TxData, error) {
	amountWei, err := toWei(amountIn)
	if err != nil {
		return nil, err
	}
	routeInts := make([]*big.Int, 0, len(routes))
	for _, r := range routes {
		routeInts = append(routeInts, big.NewInt(r))
	}
	return c.packAndBuild(ctx, from, Converter, converterABI, nil, DefaultGasLimit,
		"swap", common.HexToAddress(tokenIn), amountWei, big.NewInt(encoding), routeInts)
}

// BuildFlashLoanTx prepares an ERC-3156 flash loan
func (c *Client) BuildFlashLoanTx(ctx context.Context, tokenAddress, amount, receiver, data, from string) (*TxData, error) {
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}

	payload := []byte{}
	if data != "" && data != "0x" {
		payload, err = hexutil.Decode(ensureHexPrefix(data))
		if err != nil {
			return nil, fmt.Errorf("invalid flash loan data: %w", err)
		}
	}

	return c.packAndBuild(ctx, from, FlashLender, flashLenderABI, nil, DefaultGasLimit,
		"flashLoan", common.HexToAddress(receiver), common.HexToAddress(tokenAddress), amountWei, payload)
}

// toWeiOrZero treats an empty amount as zero
func toWeiOrZero(amount string) (*big.Int, error) {
	if strings.TrimSpace(amount) == "" {
		return big.NewInt(0), nil
	}
	return toWei(amount)
}

// toSignedWei converts a signed human-readable amount to wei
func toSignedWei(amount string) (*big.Int, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return value.Shift(tokenDecimals).BigInt(), nil
}
