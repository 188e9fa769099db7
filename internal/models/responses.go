package models

// HealthResponse is the basic liveness probe response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusResponse reports service status and RPC connectivity
type StatusResponse struct {
	Status       string                 `json:"status"`
	Version      string                 `json:"version"`
	Environment  string                 `json:"environment"`
	RPCConnected bool                   `json:"rpc_connected"`
	Components   map[string]interface{} `json:"components,omitempty"`
}

// DetailedHealthResponse reports per-component health
type DetailedHealthResponse struct {
	Status     string                 `json:"status"`
	Version    string                 `json:"version"`
	Timestamp  string                 `json:"timestamp"`
	Components map[string]interface{} `json:"components"`
	RPCStatus  map[string]interface{} `json:"rpc_status"`
	SDKStatus  map[string]interface{} `json:"sdk_status"`
}

// BalanceResponse is a single-token balance
type BalanceResponse struct {
	Address      string `json:"address"`
	Token        string `json:"token"`
	Balance      string `json:"balance"`
	TokenAddress string `json:"token_address,omitempty"`
}

// AllBalancesResponse aggregates every supported token balance for an
// address. TotalUSDValue is nil when the price index was unavailable.
type AllBalancesResponse struct {
	Address       string            `json:"address"`
	Balances      map[string]string `json:"balances"`
	TotalUSDValue *string           `json:"total_usd_value"`
}

// BatchBalancesResponse maps each requested address to its balances
type BatchBalancesResponse struct {
	Results map[string]*AllBalancesResponse `json:"results"`
	Count   int                             `json:"count"`
	Cached  int                             `json:"cached"`
}

// ProtocolInfoResponse carries the protocol NAV triple
type ProtocolInfoResponse struct {
	BaseNAV string `json:"base_nav"`
	FNAV    string `json:"f_nav"`
	XNAV    string `json:"x_nav"`
	Source  string `json:"source"`
	Note    string `json:"note,omitempty"`
}

// TokenNavResponse is the NAV of a single token
type TokenNavResponse struct {
	Token  string `json:"token"`
	NAV    string `json:"nav"`
	Source string `json:"source"`
	Note   string `json:"note,omitempty"`
}

// BatchNavResponse maps each requested token to its NAV
type BatchNavResponse struct {
	Results map[string]*TokenNavResponse `json:"results"`
	Count   int                          `json:"count"`
	Cached  int                          `json:"cached"`
}

// V2PoolInfoResponse describes the V2 pool
type V2PoolInfoResponse struct {
	PoolAddress     string                 `json:"pool_address"`
	TotalAssets     string                 `json:"total_assets"`
	TotalSupply     string                 `json:"total_supply"`
	BasePoolAddress string                 `json:"base_pool_address,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// V2PositionInfoResponse describes a V2 position
type V2PositionInfoResponse struct {
	PositionID      int64                  `json:"position_id"`
	PoolAddress     string                 `json:"pool_address"`
	Owner           string                 `json:"owner"`
	Collateral      string                 `json:"collateral"`
	Debt            string                 `json:"debt"`
	CollateralRatio string                 `json:"collateral_ratio,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// V2PoolManagerInfoResponse describes the pool manager view of a pool
type V2PoolManagerInfoResponse struct {
	PoolAddress     string                 `json:"pool_address"`
	TotalCollateral string                 `json:"total_collateral,omitempty"`
	TotalDebt       string                 `json:"total_debt,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// V2ReservePoolInfoResponse describes reserve pool state for a token
type V2ReservePoolInfoResponse struct {
	PoolAddress   string                 `json:"pool_address"`
	TotalReserves string                 `json:"total_reserves,omitempty"`
	BonusRatio    string                 `json:"bonus_ratio,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
}

// ProtocolPoolInfoResponse describes pool manager capacities
type ProtocolPoolInfoResponse struct {
	PoolAddress        string                 `json:"pool_address"`
	CollateralCapacity string                 `json:"collateral_capacity,omitempty"`
	CollateralBalance  string                 `json:"collateral_balance,omitempty"`
	DebtCapacity       string                 `json:"debt_capacity,omitempty"`
	DebtBalance        string                 `json:"debt_balance,omitempty"`
	Details            map[string]interface{} `json:"details,omitempty"`
}

// ProtocolMarketInfoResponse describes a V1 market
type ProtocolMarketInfoResponse struct {
	MarketAddress   string                 `json:"market_address"`
	CollateralRatio string                 `json:"collateral_ratio,omitempty"`
	TotalCollateral string                 `json:"total_collateral,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
}

// ProtocolTreasuryInfoResponse describes the treasury
type ProtocolTreasuryInfoResponse struct {
	TreasuryAddress string                 `json:"treasury_address"`
	Details         map[string]interface{} `json:"details"`
}

// ProtocolV1InfoResponse carries V1 protocol views
type ProtocolV1InfoResponse struct {
	NAV             map[string]string `json:"nav,omitempty"`
	CollateralRatio string            `json:"collateral_ratio,omitempty"`
	RebalancePools  []string          `json:"rebalance_pools,omitempty"`
}

// ProtocolPegKeeperInfoResponse describes the peg keeper
type ProtocolPegKeeperInfoResponse struct {
	IsActive    bool                   `json:"is_active"`
	DebtCeiling string                 `json:"debt_ceiling"`
	TotalDebt   string                 `json:"total_debt"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// ConvexPoolInfoResponse describes a Convex pool
type ConvexPoolInfoResponse struct {
	PoolID       int64                  `json:"pool_id"`
	PoolName     string                 `json:"pool_name,omitempty"`
	LPToken      string                 `json:"lp_token,omitempty"`
	GaugeAddress string                 `json:"gauge_address,omitempty"`
	TVL          string                 `json:"tvl,omitempty"`
	RewardTokens []string               `json:"reward_tokens"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// ConvexPoolsListResponse is a paginated list of Convex pools
type ConvexPoolsListResponse struct {
	Pools      map[int64]map[string]interface{} `json:"pools"`
	TotalPools int                              `json:"total_pools"`
	Page       int                              `json:"page,omitempty"`
	Limit      int                              `json:"limit,omitempty"`
	TotalPages int                              `json:"total_pages,omitempty"`
}

// ConvexUserVaultsResponse lists a user's Convex vaults
type ConvexUserVaultsResponse struct {
	Address     string                   `json:"address"`
	Vaults      []map[string]interface{} `json:"vaults"`
	TotalVaults int                      `json:"total_vaults"`
}

// ConvexVaultInfoResponse describes a single Convex vault
type ConvexVaultInfoResponse struct {
	VaultAddress  string `json:"vault_address"`
	PoolID        int64  `json:"pool_id"`
	PoolName      string `json:"pool_name,omitempty"`
	StakedBalance string `json:"staked_balance"`
	StakedToken   string `json:"staked_token,omitempty"`
	GaugeAddress  string `json:"gauge_address,omitempty"`
}

// ConvexVaultRewardsResponse lists pending rewards for a Convex vault
type ConvexVaultRewardsResponse struct {
	VaultAddress string            `json:"vault_address"`
	PoolID       int64             `json:"pool_id"`
	Rewards      map[string]string `json:"rewards"`
	RewardTokens []string          `json:"reward_tokens"`
}

// CurvePoolInfoResponse describes a Curve pool
type CurvePoolInfoResponse struct {
	PoolAddress  string                 `json:"pool_address"`
	LPToken      string                 `json:"lp_token,omitempty"`
	GaugeAddress string                 `json:"gauge_address,omitempty"`
	VirtualPrice string                 `json:"virtual_price,omitempty"`
	Balances     []string               `json:"balances"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// CurvePoolsListResponse is a paginated list of Curve pools
type CurvePoolsListResponse struct {
	Pools      []map[string]interface{} `json:"pools"`
	TotalPools int                      `json:"total_pools"`
	Page       int                      `json:"page,omitempty"`
	Limit      int                      `json:"limit,omitempty"`
	TotalPages int                      `json:"total_pages,omitempty"`
}

// CurveGaugeBalanceResponse is a user's staked balance in a Curve gauge
type CurveGaugeBalanceResponse struct {
	GaugeAddress  string `json:"gauge_address"`
	UserAddress   string `json:"user_address"`
	StakedBalance string `json:"staked_balance"`
	LPToken       string `json:"lp_token,omitempty"`
}

// CurveGaugeRewardsResponse lists a user's claimable Curve gauge rewards
type CurveGaugeRewardsResponse struct {
	GaugeAddress string            `json:"gauge_address"`
	UserAddress  string            `json:"user_address"`
	Rewards      map[string]string `json:"rewards"`
	RewardTokens []string          `json:"reward_tokens"`
}

// RebalancePoolBalancesResponse is a user's V1 rebalance pool state
type RebalancePoolBalancesResponse struct {
	PoolAddress string `json:"pool_address"`
	Address     string `json:"address"`
	Deposited   string `json:"deposited"`
	Unlocked    string `json:"unlocked"`
	Unlocking   string `json:"unlocking"`
}

// GaugeRewardsResponse lists a user's claimable rewards on one gauge
type GaugeRewardsResponse struct {
	GaugeAddress string            `json:"gauge_address"`
	UserAddress  string            `json:"user_address"`
	Rewards      map[string]string `json:"rewards"`
	RewardTokens []string          `json:"reward_tokens"`
}

// GaugesOverviewResponse summarizes a user's position across known gauges
type GaugesOverviewResponse struct {
	Address     string                   `json:"address"`
	Gauges      []map[string]interface{} `json:"gauges"`
	TotalGauges int                      `json:"total_gauges"`
}

// VeFXNInfoResponse describes a user's veFXN lock
type VeFXNInfoResponse struct {
	Address      string `json:"address"`
	LockedAmount string `json:"locked_amount"`
	UnlockTime   int64  `json:"unlock_time"`
	VotingPower  string `json:"voting_power"`
}

// TransactionResponse is the broadcast result
type TransactionResponse struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transaction_hash"`
	Status          string `json:"status"`
	GasEstimate     *int64 `json:"gas_estimate,omitempty"`
	BlockNumber     *int64 `json:"block_number,omitempty"`
}

// TransactionDataResponse is an unsigned transaction ready for client-side
// signing. Field names follow the Ethereum JSON convention.
type TransactionDataResponse struct {
	To                   string `json:"to"`
	Data                 string `json:"data"`
	Value                string `json:"value"`
	Gas                  int64  `json:"gas"`
	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                int64  `json:"nonce"`
	ChainID              int64  `json:"chainId"`
	EstimatedGas         *int64 `json:"estimated_gas,omitempty"`
	EstimatedGasCostWei  string `json:"estimated_gas_cost_wei,omitempty"`
}

// PreparedTransactionsResponse carries multiple unsigned transactions
type PreparedTransactionsResponse struct {
	Transactions []*TransactionDataResponse `json:"transactions"`
	Count        int                        `json:"count"`
}

// TransactionStatusResponse reports the lifecycle state of a transaction
type TransactionStatusResponse struct {
	TransactionHash   string `json:"transaction_hash"`
	Status            string `json:"status"`
	BlockNumber       *int64 `json:"block_number,omitempty"`
	Confirmations     *int64 `json:"confirmations,omitempty"`
	GasUsed           *int64 `json:"gas_used,omitempty"`
	EffectiveGasPrice string `json:"effective_gas_price,omitempty"`
	Error             string `json:"error,omitempty"`
}
