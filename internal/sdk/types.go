package sdk

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Transaction status values
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
	StatusNotFound  = "not_found"
)

// TxData is an unsigned transaction ready for client-side signing.
// Monetary fields are decimal strings in wei.
type TxData struct {
	To                   string
	Data                 string
	Value                string
	Gas                  int64
	GasPrice             string
	MaxFeePerGas         string
	MaxPriorityFeePerGas string
	Nonce                int64
	ChainID              int64
}

// NAV holds the protocol NAV triple in USD
type NAV struct {
	BaseNAV decimal.Decimal
	FNAV    decimal.Decimal
	XNAV    decimal.Decimal
}

// V1NAV holds the V1 market NAV pair
type V1NAV struct {
	FNAV decimal.Decimal
	XNAV decimal.Decimal
}

// V2PoolInfo describes the fxUSD base pool
type V2PoolInfo struct {
	BasePoolAddress string
	TotalAssets     decimal.Decimal
	TotalSupply     decimal.Decimal
	NAV             NAV
}

// TreasuryInfo describes the stETH treasury
type TreasuryInfo struct {
	TotalBaseToken decimal.Decimal
	NAV            NAV
	CollateralRatio decimal.Decimal
}

// PoolManagerInfo describes pool manager capacities for a pool
type PoolManagerInfo struct {
	CollateralCapacity decimal.Decimal
	CollateralBalance  decimal.Decimal
	DebtCapacity       decimal.Decimal
	DebtBalance        decimal.Decimal
}

// MarketInfo describes a V1 market
type MarketInfo struct {
	CollateralRatio decimal.Decimal
	TotalCollateral decimal.Decimal
	FToken          string
	XToken          string
	BaseToken       string
}

// PositionInfo describes a V2 leveraged position
type PositionInfo struct {
	PoolAddress     string
	Owner           string
	Collateral      decimal.Decimal
	Debt            decimal.Decimal
	CollateralRatio decimal.Decimal
}

// PegKeeperInfo describes the fxUSD peg keeper
type PegKeeperInfo struct {
	IsActive    bool
	DebtCeiling decimal.Decimal
	TotalDebt   decimal.Decimal
}

// RebalancePoolBalances holds a user's V1 rebalance pool state
type RebalancePoolBalances struct {
	Deposited decimal.Decimal
	Unlocked  decimal.Decimal
	Unlocking decimal.Decimal
}

// VeFXNLockedInfo holds a user's veFXN lock
type VeFXNLockedInfo struct {
	Amount  decimal.Decimal
	End     int64
	Balance decimal.Decimal
}

// ConvexPoolInfo describes a Convex pool from the catalog
type ConvexPoolInfo struct {
	ID           int64
	Name         string
	LPToken      string
	Gauge        string
	RewardTokens []string
	TVL          decimal.Decimal
}

// ConvexVaultInfo describes a user's Convex vault
type ConvexVaultInfo struct {
	VaultAddress  string
	PoolID        int64
	PoolName      string
	StakedBalance decimal.Decimal
	StakedToken   string
	Gauge         string
}

// ConvexVaultRewards lists pending rewards for a vault
type ConvexVaultRewards struct {
	Rewards      map[string]decimal.Decimal
	RewardTokens []string
}

// CurvePoolInfo describes a Curve pool
type CurvePoolInfo struct {
	PoolAddress  string
	LPToken      string
	Gauge        string
	VirtualPrice decimal.Decimal
	Balances     []decimal.Decimal
}

// Receipt is a confirmed transaction receipt
type Receipt struct {
	Status            uint64
	BlockNumber       int64
	GasUsed           int64
	EffectiveGasPrice *big.Int
}

// GasEstimate is the outcome of a gas estimation request
type GasEstimate struct {
	Gas     int64
	CostWei *big.Int
}

// ContractCallError indicates a failed chain read or call encoding
type ContractCallError struct {
	Op  string
	Err error
}

func (e *ContractCallError) Error() string {
	return fmt.Sprintf("contract call %s failed: %v", e.Op, e.Err)
}

func (e *ContractCallError) Unwrap() error { return e.Err }

// BroadcastError indicates a failed raw transaction submission
type BroadcastError struct {
	Err error
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("transaction broadcast failed: %v", e.Err)
}

func (e *BroadcastError) Unwrap() error { return e.Err }
