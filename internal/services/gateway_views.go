package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/pkg/cache"
)

// ---- Protocol views ----

// PoolInfo returns pool manager capacities for a V2 pool
func (s *GatewayService) PoolInfo(ctx context.Context, poolAddress string) (*models.ProtocolPoolInfoResponse, error) {
	pool, appErr := checksummedAddress(poolAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("pool_info", pool)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ProtocolPoolInfoResponse), nil
	}

	var info *sdk.PoolManagerInfo
	err := s.call(ctx, "pool_info", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.PoolManagerInfo(ctx, pool)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ProtocolPoolInfoResponse{
		PoolAddress:        pool,
		CollateralCapacity: info.CollateralCapacity.String(),
		CollateralBalance:  info.CollateralBalance.String(),
		DebtCapacity:       info.DebtCapacity.String(),
		DebtBalance:        info.DebtBalance.String(),
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// MarketInfo returns the state of a V1 market
func (s *GatewayService) MarketInfo(ctx context.Context, marketAddress string) (*models.ProtocolMarketInfoResponse, error) {
	market, appErr := checksummedAddress(marketAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("market_info", market)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ProtocolMarketInfoResponse), nil
	}

	var info *sdk.MarketInfo
	err := s.call(ctx, "market_info", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.MarketInfo(ctx, market)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ProtocolMarketInfoResponse{
		MarketAddress:   market,
		CollateralRatio: info.CollateralRatio.String(),
		TotalCollateral: info.TotalCollateral.String(),
		Details: map[string]interface{}{
			"f_token":    info.FToken,
			"x_token":    info.XToken,
			"base_token": info.BaseToken,
		},
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// TreasuryInfo returns the stETH treasury state
func (s *GatewayService) TreasuryInfo(ctx context.Context) (*models.ProtocolTreasuryInfoResponse, error) {
	key := cache.Key("treasury_info")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ProtocolTreasuryInfoResponse), nil
	}

	var info *sdk.TreasuryInfo
	err := s.call(ctx, "treasury_info", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.TreasuryInfo(ctx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ProtocolTreasuryInfoResponse{
		TreasuryAddress: sdk.StETHTreasury,
		Details: map[string]interface{}{
			"total_base_token": info.TotalBaseToken.String(),
			"collateral_ratio": info.CollateralRatio.String(),
			"base_nav":         info.NAV.BaseNAV.String(),
			"f_nav":            info.NAV.FNAV.String(),
			"x_nav":            info.NAV.XNAV.String(),
		},
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// V1NAV returns the V1 market NAV pair
func (s *GatewayService) V1NAV(ctx context.Context) (*models.ProtocolV1InfoResponse, error) {
	key := cache.Key("v1_nav")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ProtocolV1InfoResponse), nil
	}

	var nav *sdk.V1NAV
	err := s.call(ctx, "v1_nav", func(client sdk.ProtocolClient) error {
		var callErr error
		nav, callErr = client.V1NAV(ctx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ProtocolV1InfoResponse{
		NAV: map[string]string{
			"f_nav": nav.FNAV.String(),
			"x_nav": nav.XNAV.String(),
		},
	}
	s.cache.Set(key, resp, s.cfg.Cache.NAVTTL)
	return resp, nil
}

// V1CollateralRatio returns the V1 treasury collateral ratio
func (s *GatewayService) V1CollateralRatio(ctx context.Context) (string, error) {
	key := cache.Key("v1_collateral_ratio")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(string), nil
	}

	var ratio decimal.Decimal
	err := s.call(ctx, "v1_collateral_ratio", func(client sdk.ProtocolClient) error {
		var callErr error
		ratio, callErr = client.V1CollateralRatio(ctx)
		return callErr
	})
	if err != nil {
		return "", toAppError(err)
	}

	out := ratio.String()
	s.cache.Set(key, out, 0)
	return out, nil
}

// V1RebalancePools lists the registered V1 rebalance pools
func (s *GatewayService) V1RebalancePools(ctx context.Context) ([]string, error) {
	key := cache.Key("v1_rebalance_pools")
	if cached, ok := s.cacheGet(key); ok {
		return cached.([]string), nil
	}

	var pools []string
	err := s.call(ctx, "v1_rebalance_pools", func(client sdk.ProtocolClient) error {
		var callErr error
		pools, callErr = client.V1RebalancePools(ctx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	s.cache.Set(key, pools, 0)
	return pools, nil
}

// RebalancePoolBalances returns a user's state in a V1 rebalance pool
func (s *GatewayService) RebalancePoolBalances(ctx context.Context, poolAddress, address string) (*models.RebalancePoolBalancesResponse, error) {
	pool, appErr := checksummedAddress(poolAddress)
	if appErr != nil {
		return nil, appErr
	}
	account, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("rebalance_pool_balances", pool, account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.RebalancePoolBalancesResponse), nil
	}

	var balances *sdk.RebalancePoolBalances
	err := s.call(ctx, "rebalance_pool_balances", func(client sdk.ProtocolClient) error {
		var callErr error
		balances, callErr = client.RebalancePoolBalances(ctx, pool, account)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.RebalancePoolBalancesResponse{
		PoolAddress: pool,
		Address:     account,
		Deposited:   balances.Deposited.String(),
		Unlocked:    balances.Unlocked.String(),
		Unlocking:   balances.Unlocking.String(),
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// StETHPrice returns the treasury's stETH price in USD
func (s *GatewayService) StETHPrice(ctx context.Context) (string, error) {
	key := cache.Key("steth_price")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(string), nil
	}

	var price decimal.Decimal
	err := s.call(ctx, "steth_price", func(client sdk.ProtocolClient) error {
		var callErr error
		price, callErr = client.StETHPrice(ctx)
		return callErr
	})
	if err != nil {
		return "", toAppError(err)
	}

	out := price.String()
	s.cache.Set(key, out, 0)
	return out, nil
}

// FxUSDSupply returns the fxUSD total supply
func (s *GatewayService) FxUSDSupply(ctx context.Context) (string, error) {
	key := cache.Key("fxusd_supply")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(string), nil
	}

	var supply decimal.Decimal
	err := s.call(ctx, "fxusd_supply", func(client sdk.ProtocolClient) error {
		var callErr error
		supply, callErr = client.FxUSDTotalSupply(ctx)
		return callErr
	})
	if err != nil {
		return "", toAppError(err)
	}

	out := supply.String()
	s.cache.Set(key, out, 0)
	return out, nil
}

// PegKeeper returns the fxUSD peg keeper state
func (s *GatewayService) PegKeeper(ctx context.Context) (*models.ProtocolPegKeeperInfoResponse, error) {
	key := cache.Key("peg_keeper")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ProtocolPegKeeperInfoResponse), nil
	}

	var info *sdk.PegKeeperInfo
	err := s.call(ctx, "peg_keeper", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.PegKeeperInfo(ctx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ProtocolPegKeeperInfoResponse{
		IsActive:    info.IsActive,
		DebtCeiling: info.DebtCeiling.String(),
		TotalDebt:   info.TotalDebt.String(),
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// ---- V2 views ----

// V2Pool returns the fxUSD base pool state
func (s *GatewayService) V2Pool(ctx context.Context) (*models.V2PoolInfoResponse, error) {
	key := cache.Key("v2_pool")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.V2PoolInfoResponse), nil
	}

	var info *sdk.V2PoolInfo
	err := s.call(ctx, "v2_pool", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.V2PoolInfo(ctx)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.V2PoolInfoResponse{
		PoolAddress:     sdk.FxUSDBasePool,
		TotalAssets:     info.TotalAssets.String(),
		TotalSupply:     info.TotalSupply.String(),
		BasePoolAddress: info.BasePoolAddress,
		Details: map[string]interface{}{
			"base_nav": info.NAV.BaseNAV.String(),
			"f_nav":    info.NAV.FNAV.String(),
			"x_nav":    info.NAV.XNAV.String(),
		},
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// V2Position returns a V2 leveraged position by id
func (s *GatewayService) V2Position(ctx context.Context, positionID int64) (*models.V2PositionInfoResponse, error) {
	key := cache.Key("v2_position", fmt.Sprintf("%d", positionID))
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.V2PositionInfoResponse), nil
	}

	var info *sdk.PositionInfo
	err := s.call(ctx, "v2_position", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.PositionInfo(ctx, positionID)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.V2PositionInfoResponse{
		PositionID:  positionID,
		PoolAddress: info.PoolAddress,
		Owner:       info.Owner,
		Collateral:  info.Collateral.String(),
		Debt:        info.Debt.String(),
	}
	if !info.CollateralRatio.IsZero() {
		resp.CollateralRatio = info.CollateralRatio.String()
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// V2PoolManager returns the pool manager view of a pool
func (s *GatewayService) V2PoolManager(ctx context.Context, poolAddress string) (*models.V2PoolManagerInfoResponse, error) {
	pool, appErr := checksummedAddress(poolAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("v2_pool_manager", pool)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.V2PoolManagerInfoResponse), nil
	}

	var info *sdk.PoolManagerInfo
	err := s.call(ctx, "v2_pool_manager", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.PoolManagerInfo(ctx, pool)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.V2PoolManagerInfoResponse{
		PoolAddress:     pool,
		TotalCollateral: info.CollateralBalance.String(),
		TotalDebt:       info.DebtBalance.String(),
		Details: map[string]interface{}{
			"collateral_capacity": info.CollateralCapacity.String(),
			"debt_capacity":       info.DebtCapacity.String(),
		},
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// V2ReservePool returns reserve pool state for a collateral token
func (s *GatewayService) V2ReservePool(ctx context.Context, tokenAddress string) (*models.V2ReservePoolInfoResponse, error) {
	token, appErr := checksummedAddress(tokenAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("v2_reserve_pool", token)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.V2ReservePoolInfoResponse), nil
	}

	var bonusRatio decimal.Decimal
	var reserves decimal.Decimal
	err := s.call(ctx, "v2_reserve_pool", func(client sdk.ProtocolClient) error {
		ratio, callErr := client.ReservePoolBonusRatio(ctx, token)
		if callErr != nil {
			return callErr
		}
		balance, callErr := client.TokenBalance(ctx, token, sdk.ReservePool)
		if callErr != nil {
			return callErr
		}
		bonusRatio, reserves = ratio, balance
		return nil
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.V2ReservePoolInfoResponse{
		PoolAddress:   sdk.ReservePool,
		TotalReserves: reserves.String(),
		BonusRatio:    bonusRatio.String(),
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// ---- Convex views ----

// ConvexPools lists the catalog of tracked Convex pools, paginated
func (s *GatewayService) ConvexPools(page, limit int) (*models.ConvexPoolsListResponse, error) {
	if page < 1 || limit < 1 || limit > 100 {
		return nil, models.NewAppError(models.ErrInvalidPagination,
			"page must be >= 1 and limit between 1 and 100", nil)
	}

	ids := make([]int64, 0, len(sdk.ConvexPoolCatalog))
	for id := range sdk.ConvexPoolCatalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := len(ids)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pools := make(map[int64]map[string]interface{}, end-start)
	for _, id := range ids[start:end] {
		pool := sdk.ConvexPoolCatalog[id]
		pools[id] = map[string]interface{}{
			"pool_name":     pool.Name,
			"lp_token":      pool.LPToken,
			"gauge_address": pool.Gauge,
			"reward_tokens": pool.RewardTokens,
		}
	}

	return &models.ConvexPoolsListResponse{
		Pools:      pools,
		TotalPools: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ConvexPool returns one Convex pool with its on-chain TVL
func (s *GatewayService) ConvexPool(ctx context.Context, poolID int64) (*models.ConvexPoolInfoResponse, error) {
	key := cache.Key("convex_pool", fmt.Sprintf("%d", poolID))
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ConvexPoolInfoResponse), nil
	}

	if _, ok := sdk.ConvexPoolCatalog[poolID]; !ok {
		return nil, models.NewAppError(models.ErrNotFound,
			fmt.Sprintf("unknown Convex pool id: %d", poolID), nil)
	}

	var info *sdk.ConvexPoolInfo
	err := s.call(ctx, "convex_pool", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.ConvexPoolInfo(ctx, poolID)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ConvexPoolInfoResponse{
		PoolID:       info.ID,
		PoolName:     info.Name,
		LPToken:      info.LPToken,
		GaugeAddress: info.Gauge,
		TVL:          info.TVL.String(),
		RewardTokens: info.RewardTokens,
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// ConvexUserVaults lists a user's vaults across the tracked pools
func (s *GatewayService) ConvexUserVaults(ctx context.Context, address string) (*models.ConvexUserVaultsResponse, error) {
	account, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("convex_user_vaults", account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ConvexUserVaultsResponse), nil
	}

	ids := make([]int64, 0, len(sdk.ConvexPoolCatalog))
	for id := range sdk.ConvexPoolCatalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	vaults := make([]map[string]interface{}, 0)
	err := s.call(ctx, "convex_user_vaults", func(client sdk.ProtocolClient) error {
		vaults = vaults[:0]
		for _, id := range ids {
			vaultAddr, callErr := client.UserConvexVault(ctx, id, account)
			if callErr != nil {
				return callErr
			}
			if vaultAddr == "" {
				continue
			}
			vaults = append(vaults, map[string]interface{}{
				"pool_id":       id,
				"pool_name":     sdk.ConvexPoolCatalog[id].Name,
				"vault_address": vaultAddr,
			})
		}
		return nil
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ConvexUserVaultsResponse{
		Address:     account,
		Vaults:      vaults,
		TotalVaults: len(vaults),
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// ConvexVault returns a single Convex vault's state
func (s *GatewayService) ConvexVault(ctx context.Context, vaultAddress string) (*models.ConvexVaultInfoResponse, error) {
	vault, appErr := checksummedAddress(vaultAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("convex_vault", vault)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ConvexVaultInfoResponse), nil
	}

	var info *sdk.ConvexVaultInfo
	err := s.call(ctx, "convex_vault", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.ConvexVaultInfo(ctx, vault)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.ConvexVaultInfoResponse{
		VaultAddress:  vault,
		PoolID:        info.PoolID,
		PoolName:      info.PoolName,
		StakedBalance: info.StakedBalance.String(),
		StakedToken:   info.StakedToken,
		GaugeAddress:  info.Gauge,
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// ConvexVaultRewards returns pending rewards for a Convex vault
func (s *GatewayService) ConvexVaultRewards(ctx context.Context, vaultAddress string) (*models.ConvexVaultRewardsResponse, error) {
	vault, appErr := checksummedAddress(vaultAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("convex_vault_rewards", vault)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.ConvexVaultRewardsResponse), nil
	}

	var info *sdk.ConvexVaultInfo
	var rewards *sdk.ConvexVaultRewards
	err := s.call(ctx, "convex_vault_rewards", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.ConvexVaultInfo(ctx, vault)
		if callErr != nil {
			return callErr
		}
		rewards, callErr = client.ConvexVaultRewards(ctx, vault)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	out := make(map[string]string, len(rewards.Rewards))
	for token, amount := range rewards.Rewards {
		out[token] = amount.String()
	}
	resp := &models.ConvexVaultRewardsResponse{
		VaultAddress: vault,
		PoolID:       info.PoolID,
		Rewards:      out,
		RewardTokens: rewards.RewardTokens,
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// ---- Curve views ----

// CurvePools lists the catalog of tracked Curve pools
func (s *GatewayService) CurvePools() *models.CurvePoolsListResponse {
	pools := make([]map[string]interface{}, 0, len(sdk.CurvePoolCatalog))
	for _, pool := range sdk.CurvePoolCatalog {
		pools = append(pools, map[string]interface{}{
			"pool_address":  pool.PoolAddress,
			"lp_token":      pool.LPToken,
			"gauge_address": pool.Gauge,
		})
	}
	return &models.CurvePoolsListResponse{
		Pools:      pools,
		TotalPools: len(pools),
	}
}

// CurvePool returns a Curve pool's on-chain state
func (s *GatewayService) CurvePool(ctx context.Context, poolAddress string) (*models.CurvePoolInfoResponse, error) {
	pool, appErr := checksummedAddress(poolAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("curve_pool", pool)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.CurvePoolInfoResponse), nil
	}

	var info *sdk.CurvePoolInfo
	err := s.call(ctx, "curve_pool", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.CurvePoolInfo(ctx, pool)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	balances := make([]string, 0, len(info.Balances))
	for _, b := range info.Balances {
		balances = append(balances, b.String())
	}
	resp := &models.CurvePoolInfoResponse{
		PoolAddress:  pool,
		LPToken:      info.LPToken,
		GaugeAddress: info.Gauge,
		VirtualPrice: info.VirtualPrice.String(),
		Balances:     balances,
	}
	s.cache.Set(key, resp, 0)
	return resp, nil
}

// CurveGaugeBalance returns a user's staked balance in a Curve gauge
func (s *GatewayService) CurveGaugeBalance(ctx context.Context, gaugeAddress, userAddress string) (*models.CurveGaugeBalanceResponse, error) {
	gauge, appErr := checksummedAddress(gaugeAddress)
	if appErr != nil {
		return nil, appErr
	}
	account, appErr := checksummedAddress(userAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("curve_gauge_balance", gauge, account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.CurveGaugeBalanceResponse), nil
	}

	var balance decimal.Decimal
	err := s.call(ctx, "curve_gauge_balance", func(client sdk.ProtocolClient) error {
		var callErr error
		balance, callErr = client.GaugeBalance(ctx, gauge, account)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.CurveGaugeBalanceResponse{
		GaugeAddress:  gauge,
		UserAddress:   account,
		StakedBalance: balance.String(),
		LPToken:       lpTokenForGauge(gauge),
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// CurveGaugeRewards lists a user's claimable rewards on a Curve gauge
func (s *GatewayService) CurveGaugeRewards(ctx context.Context, gaugeAddress, userAddress string) (*models.CurveGaugeRewardsResponse, error) {
	rewards, err := s.gaugeRewards(ctx, gaugeAddress, userAddress)
	if err != nil {
		return nil, err
	}
	return &models.CurveGaugeRewardsResponse{
		GaugeAddress: rewards.GaugeAddress,
		UserAddress:  rewards.UserAddress,
		Rewards:      rewards.Rewards,
		RewardTokens: rewards.RewardTokens,
	}, nil
}

// ---- Gauge views ----

// rewardTokensForGauge resolves the reward token set for a gauge. Gauges
// outside the Convex catalog fall back to the standard CRV/CVX/FXN set.
func rewardTokensForGauge(gauge string) []string {
	for _, pool := range sdk.ConvexPoolCatalog {
		if strings.EqualFold(pool.Gauge, gauge) {
			return pool.RewardTokens
		}
	}
	return []string{sdk.CRV, sdk.CVX, sdk.FXN}
}

func lpTokenForGauge(gauge string) string {
	for _, pool := range sdk.CurvePoolCatalog {
		if strings.EqualFold(pool.Gauge, gauge) {
			return pool.LPToken
		}
	}
	return ""
}

// GaugeWeight returns the absolute controller weight of a gauge
func (s *GatewayService) GaugeWeight(ctx context.Context, gaugeAddress string) (string, error) {
	gauge, appErr := checksummedAddress(gaugeAddress)
	if appErr != nil {
		return "", appErr
	}

	key := cache.Key("gauge_weight", gauge)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(string), nil
	}

	var weight decimal.Decimal
	err := s.call(ctx, "gauge_weight", func(client sdk.ProtocolClient) error {
		var callErr error
		weight, callErr = client.GaugeWeight(ctx, gauge)
		return callErr
	})
	if err != nil {
		return "", toAppError(err)
	}

	out := weight.String()
	s.cache.Set(key, out, 0)
	return out, nil
}

// GaugeRelativeWeight returns the normalized controller weight of a gauge
func (s *GatewayService) GaugeRelativeWeight(ctx context.Context, gaugeAddress string) (string, error) {
	gauge, appErr := checksummedAddress(gaugeAddress)
	if appErr != nil {
		return "", appErr
	}

	key := cache.Key("gauge_relative_weight", gauge)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(string), nil
	}

	var weight decimal.Decimal
	err := s.call(ctx, "gauge_relative_weight", func(client sdk.ProtocolClient) error {
		var callErr error
		weight, callErr = client.GaugeRelativeWeight(ctx, gauge)
		return callErr
	})
	if err != nil {
		return "", toAppError(err)
	}

	out := weight.String()
	s.cache.Set(key, out, 0)
	return out, nil
}

// gaugeRewards reads claimable amounts for every reward token of a gauge
func (s *GatewayService) gaugeRewards(ctx context.Context, gaugeAddress, userAddress string) (*models.GaugeRewardsResponse, error) {
	gauge, appErr := checksummedAddress(gaugeAddress)
	if appErr != nil {
		return nil, appErr
	}
	account, appErr := checksummedAddress(userAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("gauge_rewards", gauge, account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.GaugeRewardsResponse), nil
	}

	tokens := rewardTokensForGauge(gauge)
	rewards := make(map[string]string, len(tokens))
	err := s.call(ctx, "gauge_rewards", func(client sdk.ProtocolClient) error {
		for _, token := range tokens {
			amount, callErr := client.ClaimableRewards(ctx, gauge, token, account)
			if callErr != nil {
				return callErr
			}
			rewards[token] = amount.String()
		}
		return nil
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.GaugeRewardsResponse{
		GaugeAddress: gauge,
		UserAddress:  account,
		Rewards:      rewards,
		RewardTokens: tokens,
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// GaugeRewards lists a user's claimable rewards on one gauge
func (s *GatewayService) GaugeRewards(ctx context.Context, gaugeAddress, userAddress string) (*models.GaugeRewardsResponse, error) {
	return s.gaugeRewards(ctx, gaugeAddress, userAddress)
}

// GaugesOverview summarizes a user's stake across the known gauges
func (s *GatewayService) GaugesOverview(ctx context.Context, address string) (*models.GaugesOverviewResponse, error) {
	account, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("gauges_overview", account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.GaugesOverviewResponse), nil
	}

	gauges := make([]map[string]interface{}, 0, len(sdk.KnownGauges))
	err := s.call(ctx, "gauges_overview", func(client sdk.ProtocolClient) error {
		gauges = gauges[:0]
		for _, gauge := range sdk.KnownGauges {
			balance, callErr := client.GaugeBalance(ctx, gauge, account)
			if callErr != nil {
				return callErr
			}
			gauges = append(gauges, map[string]interface{}{
				"gauge_address":  gauge,
				"staked_balance": balance.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.GaugesOverviewResponse{
		Address:     account,
		Gauges:      gauges,
		TotalGauges: len(gauges),
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// ---- veFXN views ----

// VeFXNInfo returns a user's veFXN lock state
func (s *GatewayService) VeFXNInfo(ctx context.Context, address string) (*models.VeFXNInfoResponse, error) {
	account, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("vefxn_info", account)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.VeFXNInfoResponse), nil
	}

	var info *sdk.VeFXNLockedInfo
	err := s.call(ctx, "vefxn_info", func(client sdk.ProtocolClient) error {
		var callErr error
		info, callErr = client.VeFXNLockedInfo(ctx, account)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.VeFXNInfoResponse{
		Address:      account,
		LockedAmount: info.Amount.String(),
		UnlockTime:   info.End,
		VotingPower:  info.Balance.String(),
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}
