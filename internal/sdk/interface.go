package sdk

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
)

// ProtocolClient is the chain access surface the gateway depends on. The
// concrete implementation talks JSON-RPC; the failover layer re-dials it
// per endpoint.
type ProtocolClient interface {
	// Connectivity
	Connected(ctx context.Context) bool
	EndpointURL() string
	Close()

	// ERC-20
	TokenBalance(ctx context.Context, tokenAddress, account string) (decimal.Decimal, error)
	TokenTotalSupply(ctx context.Context, tokenAddress string) (decimal.Decimal, error)

	// Protocol views
	TreasuryNAV(ctx context.Context) (*NAV, error)
	TreasuryInfo(ctx context.Context) (*TreasuryInfo, error)
	V2PoolInfo(ctx context.Context) (*V2PoolInfo, error)
	V1NAV(ctx context.Context) (*V1NAV, error)
	V1CollateralRatio(ctx context.Context) (decimal.Decimal, error)
	V1RebalancePools(ctx context.Context) ([]string, error)
	RebalancePoolBalances(ctx context.Context, poolAddress, account string) (*RebalancePoolBalances, error)
	StETHPrice(ctx context.Context) (decimal.Decimal, error)
	FxUSDTotalSupply(ctx context.Context) (decimal.Decimal, error)
	PegKeeperInfo(ctx context.Context) (*PegKeeperInfo, error)
	PoolManagerInfo(ctx context.Context, poolAddress string) (*PoolManagerInfo, error)
	MarketInfo(ctx context.Context, marketAddress string) (*MarketInfo, error)
	PositionInfo(ctx context.Context, positionID int64) (*PositionInfo, error)
	ReservePoolBonusRatio(ctx context.Context, tokenAddress string) (decimal.Decimal, error)

	// Gauges and veFXN
	GaugeWeight(ctx context.Context, gaugeAddress string) (decimal.Decimal, error)
	GaugeRelativeWeight(ctx context.Context, gaugeAddress string) (decimal.Decimal, error)
	ClaimableRewards(ctx context.Context, gaugeAddress, tokenAddress, account string) (decimal.Decimal, error)
	GaugeBalance(ctx context.Context, gaugeAddress, account string) (decimal.Decimal, error)
	VeFXNLockedInfo(ctx context.Context, account string) (*VeFXNLockedInfo, error)

	// Convex and Curve
	ConvexPoolInfo(ctx context.Context, poolID int64) (*ConvexPoolInfo, error)
	UserConvexVault(ctx context.Context, poolID int64, account string) (string, error)
	ConvexVaultInfo(ctx context.Context, vaultAddress string) (*ConvexVaultInfo, error)
	ConvexVaultRewards(ctx context.Context, vaultAddress string) (*ConvexVaultRewards, error)
	CurvePoolInfo(ctx context.Context, poolAddress string) (*CurvePoolInfo, error)

	// Transactions
	BroadcastRawTransaction(ctx context.Context, rawTx string) (string, error)
	TransactionReceipt(ctx context.Context, txHash string) (*Receipt, error)
	BlockNumber(ctx context.Context) (int64, error)
	EstimateGas(ctx context.Context, from, to, data string, value *big.Int) (*GasEstimate, error)

	// Unsigned transaction builders
	BuildMintFTokenTx(ctx context.Context, marketAddress, baseIn, recipient, minFTokenOut, from string) (*TxData, error)
	BuildMintXTokenTx(ctx context.Context, marketAddress, baseIn, recipient, minXTokenOut, from string) (*TxData, error)
	BuildMintBothTokensTx(ctx context.Context, marketAddress, baseIn, recipient, minFTokenOut, minXTokenOut, from string) (*TxData, error)
	BuildApproveTx(ctx context.Context, tokenAddress, spender, amount, from string) (*TxData, error)
	BuildTransferTx(ctx context.Context, tokenAddress, recipient, amount, from string) (*TxData, error)
	BuildRebalancePoolDepositTx(ctx context.Context, poolAddress, amount, recipient, from string) (*TxData, error)
	BuildRebalancePoolWithdrawTx(ctx context.Context, poolAddress string, claimRewards bool, from string) (*TxData, error)
	BuildRebalancePoolUnlockTx(ctx context.Context, poolAddress, amount, from string) (*TxData, error)
	BuildRebalancePoolClaimTx(ctx context.Context, poolAddress string, tokens []string, from string) (*TxData, error)
	BuildSavingsDepositTx(ctx context.Context, amount, from string) (*TxData, error)
	BuildSavingsRedeemTx(ctx context.Context, amount, from string) (*TxData, error)
	BuildStabilityPoolDepositTx(ctx context.Context, amount, from string) (*TxData, error)
	BuildStabilityPoolWithdrawTx(ctx context.Context, amount, from string) (*TxData, error)
	BuildVestingClaimTx(ctx context.Context, tokenType, from string) (*TxData, error)
	BuildHarvestPoolManagerTx(ctx context.Context, poolAddress, from string) (*TxData, error)
	BuildHarvestTreasuryTx(ctx context.Context, from string) (*TxData, error)
	BuildRequestBonusTx(ctx context.Context, tokenAddress, amount, recipient, from string) (*TxData, error)
	BuildOperatePositionTx(ctx context.Context, poolAddress string, positionID int64, newCollateral, newDebt, from string) (*TxData, error)
	BuildRebalancePositionTx(ctx context.Context, poolAddress string, positionID int64, receiver, from string) (*TxData, error)
	BuildLiquidatePositionTx(ctx context.Context, poolAddress string, positionID int64, receiver, from string) (*TxData, error)
	BuildGaugeVoteTx(ctx context.Context, gaugeAddress, weight, from string) (*TxData, error)
	BuildGaugeClaimTx(ctx context.Context, gaugeAddress, account string) (*TxData, error)
	BuildVeFXNDepositTx(ctx context.Context, amount string, unlockTime int64, from string) (*TxData, error)
	BuildMintViaTreasuryTx(ctx context.Context, baseIn, recipient string, option int, from string) (*TxData, error)
	BuildMintViaGatewayTx(ctx context.Context, amountETH, minTokenOut, tokenType, from string) (*TxData, error)
	BuildRedeemTx(ctx context.Context, marketAddress, fTokenIn, xTokenIn, recipient, minBaseOut, from string) (*TxData, error)
	BuildRedeemViaTreasuryTx(ctx context.Context, fTokenIn, xTokenIn, owner, from string) (*TxData, error)
	BuildSwapTx(ctx context.Context, tokenIn, amountIn string, encoding int64, routes []int64, from string) (*TxData, error)
	BuildFlashLoanTx(ctx context.Context, tokenAddress, amount, receiver, data, from string) (*TxData, error)
}
