package sdk

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal ABI fragments for the contracts the gateway touches. Only the
// functions actually called are declared.

const erc20ABIJSON = `[
  {"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"totalSupply","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"name":"transfer","type":"function","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

const treasuryABIJSON = `[
  {"name":"getCurrentNav","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"baseNav","type":"uint256"},{"name":"fNav","type":"uint256"},{"name":"xNav","type":"uint256"}]},
  {"name":"totalBaseToken","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"collateralRatio","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"currentBaseTokenPrice","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"mint","type":"function","stateMutability":"nonpayable","inputs":[{"name":"baseIn","type":"uint256"},{"name":"recipient","type":"address"},{"name":"option","type":"uint8"}],"outputs":[{"name":"fTokenOut","type":"uint256"},{"name":"xTokenOut","type":"uint256"}]},
  {"name":"redeem","type":"function","stateMutability":"nonpayable","inputs":[{"name":"fTokenIn","type":"uint256"},{"name":"xTokenIn","type":"uint256"},{"name":"owner","type":"address"}],"outputs":[{"name":"baseOut","type":"uint256"}]},
  {"name":"harvest","type":"function","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

const marketABIJSON = `[
  {"name":"mintFToken","type":"function","stateMutability":"nonpayable","inputs":[{"name":"baseIn","type":"uint256"},{"name":"recipient","type":"address"},{"name":"minFTokenMinted","type":"uint256"}],"outputs":[{"name":"fTokenMinted","type":"uint256"}]},
  {"name":"mintXToken","type":"function","stateMutability":"nonpayable","inputs":[{"name":"baseIn","type":"uint256"},{"name":"recipient","type":"address"},{"name":"minXTokenMinted","type":"uint256"}],"outputs":[{"name":"xTokenMinted","type":"uint256"}]},
  {"name":"mint","type":"function","stateMutability":"nonpayable","inputs":[{"name":"baseIn","type":"uint256"},{"name":"recipient","type":"address"},{"name":"minFTokenMinted","type":"uint256"},{"name":"minXTokenMinted","type":"uint256"}],"outputs":[{"name":"fTokenMinted","type":"uint256"},{"name":"xTokenMinted","type":"uint256"}]},
  {"name":"redeem","type":"function","stateMutability":"nonpayable","inputs":[{"name":"fTokenIn","type":"uint256"},{"name":"xTokenIn","type":"uint256"},{"name":"recipient","type":"address"},{"name":"minBaseOut","type":"uint256"}],"outputs":[{"name":"baseOut","type":"uint256"}]},
  {"name":"fToken","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"name":"xToken","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"name":"baseToken","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const gatewayABIJSON = `[
  {"name":"mintFToken","type":"function","stateMutability":"payable","inputs":[{"name":"minFTokenMinted","type":"uint256"}],"outputs":[{"name":"fTokenMinted","type":"uint256"}]},
  {"name":"mintXToken","type":"function","stateMutability":"payable","inputs":[{"name":"minXTokenMinted","type":"uint256"}],"outputs":[{"name":"xTokenMinted","type":"uint256"}]}
]`

const basePoolABIJSON = `[
  {"name":"totalAssets","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"totalSupply","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"nav","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"deposit","type":"function","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"}],"outputs":[{"name":"shares","type":"uint256"}]},
  {"name":"redeem","type":"function","stateMutability":"nonpayable","inputs":[{"name":"shares","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"outputs":[{"name":"assets","type":"uint256"}]},
  {"name":"withdraw","type":"function","stateMutability":"nonpayable","inputs":[{"name":"assets","type":"uint256"},{"name":"receiver","type":"address"},{"name":"owner","type":"address"}],"outputs":[{"name":"shares","type":"uint256"}]}
]`

const poolManagerABIJSON = `[
  {"name":"getPoolInfo","type":"function","stateMutability":"view","inputs":[{"name":"pool","type":"address"}],"outputs":[{"name":"collateralCapacity","type":"uint256"},{"name":"collateralBalance","type":"uint256"},{"name":"debtCapacity","type":"uint256"},{"name":"debtBalance","type":"uint256"}]},
  {"name":"getPosition","type":"function","stateMutability":"view","inputs":[{"name":"positionId","type":"uint256"}],"outputs":[{"name":"pool","type":"address"},{"name":"owner","type":"address"},{"name":"rawColls","type":"uint256"},{"name":"rawDebts","type":"uint256"}]},
  {"name":"operate","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pool","type":"address"},{"name":"positionId","type":"uint256"},{"name":"newColl","type":"int256"},{"name":"newDebt","type":"int256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"rebalance","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pool","type":"address"},{"name":"receiver","type":"address"},{"name":"positionId","type":"uint256"}],"outputs":[]},
  {"name":"liquidate","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pool","type":"address"},{"name":"receiver","type":"address"},{"name":"positionId","type":"uint256"}],"outputs":[]},
  {"name":"harvest","type":"function","stateMutability":"nonpayable","inputs":[{"name":"pool","type":"address"}],"outputs":[]}
]`

const pegKeeperABIJSON = `[
  {"name":"isActive","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"name":"debtCeiling","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"totalDebt","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

const reservePoolABIJSON = `[
  {"name":"bonusRatio","type":"function","stateMutability":"view","inputs":[{"name":"token","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"requestBonus","type":"function","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"},{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}
]`

const rebalanceRegistryABIJSON = `[
  {"name":"getPools","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]}
]`

const rebalancePoolABIJSON = `[
  {"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"unlockedBalanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"unlockingBalanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"balance","type":"uint256"},{"name":"unlockAt","type":"uint256"}]},
  {"name":"deposit","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"recipient","type":"address"}],"outputs":[]},
  {"name":"unlock","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
  {"name":"withdrawUnlocked","type":"function","stateMutability":"nonpayable","inputs":[{"name":"unwrap","type":"bool"},{"name":"claimRewards","type":"bool"}],"outputs":[]},
  {"name":"claim","type":"function","stateMutability":"nonpayable","inputs":[{"name":"tokens","type":"address[]"}],"outputs":[]}
]`

const stabilityPoolABIJSON = `[
  {"name":"deposit","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"recipient","type":"address"}],"outputs":[]},
  {"name":"withdraw","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]}
]`

const vestingABIJSON = `[
  {"name":"claim","type":"function","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

const gaugeControllerABIJSON = `[
  {"name":"get_gauge_weight","type":"function","stateMutability":"view","inputs":[{"name":"gauge","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"gauge_relative_weight","type":"function","stateMutability":"view","inputs":[{"name":"gauge","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"vote_for_gauge_weights","type":"function","stateMutability":"nonpayable","inputs":[{"name":"gauge","type":"address"},{"name":"weight","type":"uint256"}],"outputs":[]}
]`

const gaugeABIJSON = `[
  {"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"claimable_reward","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"},{"name":"token","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"claim_rewards","type":"function","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
  {"name":"lp_token","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const veFXNABIJSON = `[
  {"name":"locked","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"amount","type":"int128"},{"name":"end","type":"uint256"}]},
  {"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"create_lock","type":"function","stateMutability":"nonpayable","inputs":[{"name":"value","type":"uint256"},{"name":"unlock_time","type":"uint256"}],"outputs":[]}
]`

const convexRegistryABIJSON = `[
  {"name":"vaultMap","type":"function","stateMutability":"view","inputs":[{"name":"pid","type":"uint256"},{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address"}]}
]`

const convexVaultABIJSON = `[
  {"name":"stakingToken","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"name":"totalBalance","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"earned","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"tokenAddresses","type":"address[]"},{"name":"totalEarned","type":"uint256[]"}]}
]`

const curvePoolABIJSON = `[
  {"name":"get_virtual_price","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"name":"balances","type":"function","stateMutability":"view","inputs":[{"name":"i","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const converterABIJSON = `[
  {"name":"swap","type":"function","stateMutability":"nonpayable","inputs":[{"name":"tokenIn","type":"address"},{"name":"amountIn","type":"uint256"},{"name":"encoding","type":"uint256"},{"name":"routes","type":"uint256[]"}],"outputs":[{"name":"amountOut","type":"uint256"}]}
]`

const flashLenderABIJSON = `[
  {"name":"flashLoan","type":"function","stateMutability":"nonpayable","inputs":[{"name":"receiver","type":"address"},{"name":"token","type":"address"},{"name":"amount","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[{"name":"","type":"bool"}]}
]`

var (
	erc20ABI             = mustABI(erc20ABIJSON)
	treasuryABI          = mustABI(treasuryABIJSON)
	marketABI            = mustABI(marketABIJSON)
	gatewayABI           = mustABI(gatewayABIJSON)
	basePoolABI          = mustABI(basePoolABIJSON)
	poolManagerABI       = mustABI(poolManagerABIJSON)
	pegKeeperABI         = mustABI(pegKeeperABIJSON)
	reservePoolABI       = mustABI(reservePoolABIJSON)
	rebalanceRegistryABI = mustABI(rebalanceRegistryABIJSON)
	rebalancePoolABI     = mustABI(rebalancePoolABIJSON)
	stabilityPoolABI     = mustABI(stabilityPoolABIJSON)
	vestingABI           = mustABI(vestingABIJSON)
	gaugeControllerABI   = mustABI(gaugeControllerABIJSON)
	gaugeABI             = mustABI(gaugeABIJSON)
	veFXNABI             = mustABI(veFXNABIJSON)
	convexRegistryABI    = mustABI(convexRegistryABIJSON)
	convexVaultABI       = mustABI(convexVaultABIJSON)
	curvePoolABI         = mustABI(curvePoolABIJSON)
	converterABI         = mustABI(converterABIJSON)
	flashLenderABI       = mustABI(flashLenderABIJSON)
)

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("sdk: invalid ABI fragment: " + err.Error())
	}
	return parsed
}
