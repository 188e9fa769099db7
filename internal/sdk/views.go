package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TreasuryNAV reads the NAV triple from the stETH treasury
func (c *Client) TreasuryNAV(ctx context.Context) (*NAV, error) {
	out, err := c.call(ctx, StETHTreasury, treasuryABI, "getCurrentNav")
	if err != nil {
		return nil, err
	}
	return &NAV{
		BaseNAV: fromWei(out[0]),
		FNAV:    fromWei(out[1]),
		XNAV:    fromWei(out[2]),
	}, nil
}

// TreasuryInfo reads treasury holdings, NAV and collateral ratio
func (c *Client) TreasuryInfo(ctx context.Context) (*TreasuryInfo, error) {
	nav, err := c.TreasuryNAV(ctx)
	if err != nil {
		return nil, err
	}

	totalOut, err := c.call(ctx, StETHTreasury, treasuryABI, "totalBaseToken")
	if err != nil {
		return nil, err
	}

	info := &TreasuryInfo{
		TotalBaseToken: fromWei(totalOut[0]),
		NAV:            *nav,
	}

	if ratioOut, err := c.call(ctx, StETHTreasury, treasuryABI, "collateralRatio"); err == nil {
		info.CollateralRatio = fromWei(ratioOut[0])
	}

	return info, nil
}

// V2PoolInfo reads the fxUSD base pool state together with the NAV triple
func (c *Client) V2PoolInfo(ctx context.Context) (*V2PoolInfo, error) {
	assetsOut, err := c.call(ctx, FxUSDBasePool, basePoolABI, "totalAssets")
	if err != nil {
		return nil, err
	}
	supplyOut, err := c.call(ctx, FxUSDBasePool, basePoolABI, "totalSupply")
	if err != nil {
		return nil, err
	}

	nav, err := c.TreasuryNAV(ctx)
	if err != nil {
		return nil, err
	}

	return &V2PoolInfo{
		BasePoolAddress: FxUSDBasePool,
		TotalAssets:     fromWei(assetsOut[0]),
		TotalSupply:     fromWei(supplyOut[0]),
		NAV:             *nav,
	}, nil
}

// V1NAV reads the V1 market NAV pair from the treasury
func (c *Client) V1NAV(ctx context.Context) (*V1NAV, error) {
	nav, err := c.TreasuryNAV(ctx)
	if err != nil {
		return nil, err
	}
	return &V1NAV{FNAV: nav.FNAV, XNAV: nav.XNAV}, nil
}

// V1CollateralRatio reads the treasury collateral ratio
func (c *Client) V1CollateralRatio(ctx context.Context) (decimal.Decimal, error) {
	out, err := c.call(ctx, StETHTreasury, treasuryABI, "collateralRatio")
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// V1RebalancePools lists the registered V1 rebalance pools
func (c *Client) V1RebalancePools(ctx context.Context) ([]string, error) {
	out, err := c.call(ctx, RebalancePoolReg, rebalanceRegistryABI, "getPools")
	if err != nil {
		return nil, err
	}

	addrs, ok := out[0].([]common.Address)
	if !ok {
		return nil, &ContractCallError{Op: "getPools", Err: errUnexpectedOutput}
	}

	pools := make([]string, 0, len(addrs))
	for _, a := range addrs {
		pools = append(pools, a.Hex())
	}
	return pools, nil
}

// RebalancePoolBalances reads a user's deposited, unlocked and unlocking
// balances in a rebalance pool
func (c *Client) RebalancePoolBalances(ctx context.Context, poolAddress, account string) (*RebalancePoolBalances, error) {
	acct := common.HexToAddress(account)

	depositedOut, err := c.call(ctx, poolAddress, rebalancePoolABI, "balanceOf", acct)
	if err != nil {
		return nil, err
	}
	unlockedOut, err := c.call(ctx, poolAddress, rebalancePoolABI, "unlockedBalanceOf", acct)
	if err != nil {
		return nil, err
	}
	unlockingOut, err := c.call(ctx, poolAddress, rebalancePoolABI, "unlockingBalanceOf", acct)
	if err != nil {
		return nil, err
	}

	return &RebalancePoolBalances{
		Deposited: fromWei(depositedOut[0]),
		Unlocked:  fromWei(unlockedOut[0]),
		Unlocking: fromWei(unlockingOut[0]),
	}, nil
}

// StETHPrice reads the treasury's view of the stETH price in USD
func (c *Client) StETHPrice(ctx context.Context) (decimal.Decimal, error) {
	out, err := c.call(ctx, StETHTreasury, treasuryABI, "currentBaseTokenPrice")
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// FxUSDTotalSupply reads the fxUSD supply
func (c *Client) FxUSDTotalSupply(ctx context.Context) (decimal.Decimal, error) {
	return c.TokenTotalSupply(ctx, FXUSD)
}

// PegKeeperInfo reads the peg keeper state
func (c *Client) PegKeeperInfo(ctx context.Context) (*PegKeeperInfo, error) {
	activeOut, err := c.call(ctx, PegKeeper, pegKeeperABI, "isActive")
	if err != nil {
		return nil, err
	}
	ceilingOut, err := c.call(ctx, PegKeeper, pegKeeperABI, "debtCeiling")
	if err != nil {
		return nil, err
	}
	debtOut, err := c.call(ctx, PegKeeper, pegKeeperABI, "totalDebt")
	if err != nil {
		return nil, err
	}

	active, _ := activeOut[0].(bool)
	return &PegKeeperInfo{
		IsActive:    active,
		DebtCeiling: fromWei(ceilingOut[0]),
		TotalDebt:   fromWei(debtOut[0]),
	}, nil
}

// PoolManagerInfo reads pool capacities from the pool manager
func (c *Client) PoolManagerInfo(ctx context.Context, poolAddress string) (*PoolManagerInfo, error) {
	out, err := c.call(ctx, PoolManager, poolManagerABI, "getPoolInfo", common.HexToAddress(poolAddress))
	if err != nil {
		return nil, err
	}
	return &PoolManagerInfo{
		CollateralCapacity: fromWei(out[0]),
		CollateralBalance:  fromWei(out[1]),
		DebtCapacity:       fromWei(out[2]),
		DebtBalance:        fromWei(out[3]),
	}, nil
}

// MarketInfo reads a V1 market's token wiring plus treasury collateral state
func (c *Client) MarketInfo(ctx context.Context, marketAddress string) (*MarketInfo, error) {
	info := &MarketInfo{}

	if out, err := c.call(ctx, marketAddress, marketABI, "fToken"); err == nil {
		if addr, ok := out[0].(common.Address); ok {
			info.FToken = addr.Hex()
		}
	}
	if out, err := c.call(ctx, marketAddress, marketABI, "xToken"); err == nil {
		if addr, ok := out[0].(common.Address); ok {
			info.XToken = addr.Hex()
		}
	}
	if out, err := c.call(ctx, marketAddress, marketABI, "baseToken"); err == nil {
		if addr, ok := out[0].(common.Address); ok {
			info.BaseToken = addr.Hex()
		}
	}

	ratio, err := c.V1CollateralRatio(ctx)
	if err != nil {
		return nil, err
	}
	info.CollateralRatio = ratio

	if out, err := c.call(ctx, StETHTreasury, treasuryABI, "totalBaseToken"); err == nil {
		info.TotalCollateral = fromWei(out[0])
	}

	return info, nil
}

// PositionInfo reads a V2 position and derives its collateral ratio
func (c *Client) PositionInfo(ctx context.Context, positionID int64) (*PositionInfo, error) {
	out, err := c.call(ctx, PoolManager, poolManagerABI, "getPosition", big.NewInt(positionID))
	if err != nil {
		return nil, err
	}

	pool, _ := out[0].(common.Address)
	owner, _ := out[1].(common.Address)

	info := &PositionInfo{
		PoolAddress: pool.Hex(),
		Owner:       owner.Hex(),
		Collateral:  fromWei(out[2]),
		Debt:        fromWei(out[3]),
	}
	if !info.Debt.IsZero() {
		info.CollateralRatio = info.Collateral.Div(info.Debt)
	}
	return info, nil
}

// ReservePoolBonusRatio reads the bonus ratio for a token
func (c *Client) ReservePoolBonusRatio(ctx context.Context, tokenAddress string) (decimal.Decimal, error) {
	out, err := c.call(ctx, ReservePool, reservePoolABI, "bonusRatio", common.HexToAddress(tokenAddress))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// GaugeWeight reads a gauge's absolute weight from the controller
func (c *Client) GaugeWeight(ctx context.Context, gaugeAddress string) (decimal.Decimal, error) {
	out, err := c.call(ctx, GaugeController, gaugeControllerABI, "get_gauge_weight", common.HexToAddress(gaugeAddress))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// GaugeRelativeWeight reads a gauge's relative weight from the controller
func (c *Client) GaugeRelativeWeight(ctx context.Context, gaugeAddress string) (decimal.Decimal, error) {
	out, err := c.call(ctx, GaugeController, gaugeControllerABI, "gauge_relative_weight", common.HexToAddress(gaugeAddress))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// ClaimableRewards reads pending rewards for an account on a gauge
func (c *Client) ClaimableRewards(ctx context.Context, gaugeAddress, tokenAddress, account string) (decimal.Decimal, error) {
	out, err := c.call(ctx, gaugeAddress, gaugeABI, "claimable_reward",
		common.HexToAddress(account), common.HexToAddress(tokenAddress))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// GaugeBalance reads an account's staked balance in a gauge
func (c *Client) GaugeBalance(ctx context.Context, gaugeAddress, account string) (decimal.Decimal, error) {
	out, err := c.call(ctx, gaugeAddress, gaugeABI, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(out[0]), nil
}

// VeFXNLockedInfo reads an account's veFXN lock and voting balance
func (c *Client) VeFXNLockedInfo(ctx context.Context, account string) (*VeFXNLockedInfo, error) {
	acct := common.HexToAddress(account)

	lockedOut, err := c.call(ctx, VEFXN, veFXNABI, "locked", acct)
	if err != nil {
		return nil, err
	}
	balanceOut, err := c.call(ctx, VEFXN, veFXNABI, "balanceOf", acct)
	if err != nil {
		return nil, err
	}

	info := &VeFXNLockedInfo{Balance: fromWei(balanceOut[0])}
	if amount, ok := lockedOut[0].(*big.Int); ok {
		info.Amount = decimal.NewFromBigInt(amount, -tokenDecimals)
	}
	if end, ok := lockedOut[1].(*big.Int); ok {
		info.End = end.Int64()
	}
	return info, nil
}

// ConvexPoolInfo resolves a pool from the catalog and fills its TVL from
// the gauge's staked supply
func (c *Client) ConvexPoolInfo(ctx context.Context, poolID int64) (*ConvexPoolInfo, error) {
	catalog, ok := ConvexPoolCatalog[poolID]
	if !ok {
		return nil, &ContractCallError{Op: "convexPoolInfo", Err: errUnknownPool}
	}

	info := catalog
	if supply, err := c.TokenTotalSupply(ctx, catalog.Gauge); err == nil {
		info.TVL = supply
	}
	return &info, nil
}

// UserConvexVault resolves the vault address a user owns for a pool. The
// zero address means no vault exists.
func (c *Client) UserConvexVault(ctx context.Context, poolID int64, account string) (string, error) {
	out, err := c.call(ctx, ConvexBooster, convexRegistryABI, "vaultMap",
		big.NewInt(poolID), common.HexToAddress(account))
	if err != nil {
		return "", err
	}

	addr, ok := out[0].(common.Address)
	if !ok || addr == (common.Address{}) {
		return "", nil
	}
	return addr.Hex(), nil
}

// ConvexVaultInfo reads a vault's staked state and matches it to the catalog
func (c *Client) ConvexVaultInfo(ctx context.Context, vaultAddress string) (*ConvexVaultInfo, error) {
	info := &ConvexVaultInfo{VaultAddress: common.HexToAddress(vaultAddress).Hex(), PoolID: -1}

	stakingOut, err := c.call(ctx, vaultAddress, convexVaultABI, "stakingToken")
	if err != nil {
		return nil, err
	}
	if addr, ok := stakingOut[0].(common.Address); ok {
		info.StakedToken = addr.Hex()
	}

	balanceOut, err := c.call(ctx, vaultAddress, convexVaultABI, "totalBalance")
	if err != nil {
		return nil, err
	}
	info.StakedBalance = fromWei(balanceOut[0])

	for id, pool := range ConvexPoolCatalog {
		if addressEqual(pool.LPToken, info.StakedToken) {
			info.PoolID = id
			info.PoolName = pool.Name
			info.Gauge = pool.Gauge
			break
		}
	}
	return info, nil
}

// ConvexVaultRewards reads pending rewards for a vault
func (c *Client) ConvexVaultRewards(ctx context.Context, vaultAddress string) (*ConvexVaultRewards, error) {
	out, err := c.call(ctx, vaultAddress, convexVaultABI, "earned")
	if err != nil {
		return nil, err
	}

	tokens, ok := out[0].([]common.Address)
	if !ok {
		return nil, &ContractCallError{Op: "earned", Err: errUnexpectedOutput}
	}
	amounts, ok := out[1].([]*big.Int)
	if !ok {
		return nil, &ContractCallError{Op: "earned", Err: errUnexpectedOutput}
	}

	rewards := &ConvexVaultRewards{
		Rewards:      make(map[string]decimal.Decimal, len(tokens)),
		RewardTokens: make([]string, 0, len(tokens)),
	}
	for i, token := range tokens {
		addr := token.Hex()
		rewards.RewardTokens = append(rewards.RewardTokens, addr)
		if i < len(amounts) {
			rewards.Rewards[addr] = decimal.NewFromBigInt(amounts[i], -tokenDecimals)
		}
	}
	return rewards, nil
}

// CurvePoolInfo reads virtual price and coin balances for a pool
func (c *Client) CurvePoolInfo(ctx context.Context, poolAddress string) (*CurvePoolInfo, error) {
	info := &CurvePoolInfo{PoolAddress: common.HexToAddress(poolAddress).Hex()}

	for _, catalog := range CurvePoolCatalog {
		if addressEqual(catalog.PoolAddress, poolAddress) {
			info.LPToken = catalog.LPToken
			info.Gauge = catalog.Gauge
			break
		}
	}

	priceOut, err := c.call(ctx, poolAddress, curvePoolABI, "get_virtual_price")
	if err != nil {
		return nil, err
	}
	info.VirtualPrice = fromWei(priceOut[0])

	// Two-coin pools throughout; stop at the first out-of-range index.
	for i := int64(0); i < 8; i++ {
		out, err := c.call(ctx, poolAddress, curvePoolABI, "balances", big.NewInt(i))
		if err != nil {
			break
		}
		info.Balances = append(info.Balances, fromWei(out[0]))
	}
	return info, nil
}
