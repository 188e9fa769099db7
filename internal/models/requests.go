package models

// BroadcastTransactionRequest carries a signed transaction for submission
type BroadcastTransactionRequest struct {
	RawTransaction string `json:"rawTransaction" binding:"required"`
}

// MintFTokenRequest prepares an fToken mint
type MintFTokenRequest struct {
	MarketAddress string `json:"market_address" binding:"required"`
	BaseIn        string `json:"base_in" binding:"required"`
	Recipient     string `json:"recipient"`
	MinFTokenOut  string `json:"min_f_token_out"`
}

// MintXTokenRequest prepares an xToken mint
type MintXTokenRequest struct {
	MarketAddress string `json:"market_address" binding:"required"`
	BaseIn        string `json:"base_in" binding:"required"`
	Recipient     string `json:"recipient"`
	MinXTokenOut  string `json:"min_x_token_out"`
}

// MintBothTokensRequest prepares a mint of both tokens
type MintBothTokensRequest struct {
	MarketAddress string `json:"market_address" binding:"required"`
	BaseIn        string `json:"base_in" binding:"required"`
	Recipient     string `json:"recipient"`
	MinFTokenOut  string `json:"min_f_token_out"`
	MinXTokenOut  string `json:"min_x_token_out"`
}

// ApproveRequest prepares an ERC-20 approval
type ApproveRequest struct {
	TokenAddress   string `json:"token_address" binding:"required"`
	SpenderAddress string `json:"spender_address" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

// TransferRequest prepares an ERC-20 transfer
type TransferRequest struct {
	TokenAddress     string `json:"token_address" binding:"required"`
	RecipientAddress string `json:"recipient_address" binding:"required"`
	Amount           string `json:"amount" binding:"required"`
}

// RebalancePoolDepositRequest prepares a rebalance pool deposit
type RebalancePoolDepositRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Recipient string `json:"recipient"`
}

// RebalancePoolWithdrawRequest prepares a rebalance pool withdrawal
type RebalancePoolWithdrawRequest struct {
	ClaimRewards *bool `json:"claim_rewards"`
}

// RebalancePoolUnlockRequest prepares a rebalance pool unlock
type RebalancePoolUnlockRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// RebalancePoolClaimRequest prepares a rebalance pool reward claim
type RebalancePoolClaimRequest struct {
	Tokens []string `json:"tokens" binding:"required"`
}

// SavingsDepositRequest prepares an fxUSD savings deposit
type SavingsDepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// SavingsRedeemRequest prepares an fxSAVE redemption
type SavingsRedeemRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// StabilityPoolDepositRequest prepares a stability pool deposit
type StabilityPoolDepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// StabilityPoolWithdrawRequest prepares a stability pool withdrawal
type StabilityPoolWithdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// RequestBonusRequest prepares a reserve pool bonus claim
type RequestBonusRequest struct {
	TokenAddress string `json:"token_address" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Recipient    string `json:"recipient"`
}

// OperatePositionRequest prepares a position collateral/debt adjustment
type OperatePositionRequest struct {
	PoolAddress   string `json:"pool_address" binding:"required"`
	NewCollateral string `json:"new_collateral" binding:"required"`
	NewDebt       string `json:"new_debt" binding:"required"`
}

// RebalancePositionRequest prepares a position rebalance
type RebalancePositionRequest struct {
	PoolAddress string `json:"pool_address" binding:"required"`
	Receiver    string `json:"receiver"`
}

// LiquidatePositionRequest prepares a position liquidation
type LiquidatePositionRequest struct {
	PoolAddress string `json:"pool_address" binding:"required"`
	Receiver    string `json:"receiver"`
}

// GaugeVoteRequest prepares a gauge weight vote
type GaugeVoteRequest struct {
	Weight string `json:"weight" binding:"required"`
}

// GaugeClaimRequest prepares a gauge reward claim
type GaugeClaimRequest struct {
	TokenAddress string `json:"token_address"`
}

// ClaimAllGaugeRewardsRequest prepares claims across multiple gauges
type ClaimAllGaugeRewardsRequest struct {
	GaugeAddresses []string `json:"gauge_addresses"`
}

// VeFxnDepositRequest prepares an FXN lock into veFXN
type VeFxnDepositRequest struct {
	Amount     string `json:"amount" binding:"required"`
	UnlockTime int64  `json:"unlock_time" binding:"required"`
}

// MintViaTreasuryRequest prepares a treasury mint
type MintViaTreasuryRequest struct {
	BaseIn    string `json:"base_in" binding:"required"`
	Recipient string `json:"recipient"`
	Option    int    `json:"option"`
}

// MintViaGatewayRequest prepares an ETH gateway mint
type MintViaGatewayRequest struct {
	AmountETH   string `json:"amount_eth" binding:"required"`
	MinTokenOut string `json:"min_token_out"`
	TokenType   string `json:"token_type" binding:"required"`
}

// RedeemRequest prepares a market redemption
type RedeemRequest struct {
	MarketAddress string `json:"market_address" binding:"required"`
	FTokenIn      string `json:"f_token_in"`
	XTokenIn      string `json:"x_token_in"`
	Recipient     string `json:"recipient"`
	MinBaseOut    string `json:"min_base_out"`
}

// RedeemViaTreasuryRequest prepares a treasury redemption
type RedeemViaTreasuryRequest struct {
	FTokenIn string `json:"f_token_in"`
	XTokenIn string `json:"x_token_in"`
	Owner    string `json:"owner"`
}

// SwapRequest prepares a converter swap
type SwapRequest struct {
	TokenIn  string  `json:"token_in" binding:"required"`
	AmountIn string  `json:"amount_in" binding:"required"`
	Encoding int64   `json:"encoding" binding:"required"`
	Routes   []int64 `json:"routes" binding:"required"`
}

// FlashLoanRequest prepares a flash loan
type FlashLoanRequest struct {
	TokenAddress string `json:"token_address" binding:"required"`
	Amount       string `json:"amount" binding:"required"`
	Receiver     string `json:"receiver" binding:"required"`
	Data         string `json:"data"`
}

// BatchBalancesRequest fetches balances for multiple addresses
type BatchBalancesRequest struct {
	Addresses []string `json:"addresses"`
}

// BatchNavRequest fetches NAV for multiple tokens
type BatchNavRequest struct {
	Tokens []string `json:"tokens"`
}
