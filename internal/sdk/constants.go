package sdk

// Mainnet contract addresses for the f(x) protocol and its token set.
var (
	// Core tokens
	FXUSD  = "0x085780639CC2cACd35E474e71f4d000e2405d8f6"
	FXN    = "0x365AccFCa291e7D3914637ABf1F7635dB165Bb09"
	FETH   = "0x53805A76E1f5ebbFE7115F16f9c87C2f7e633726"
	RUSD   = "0x65D72AA8DA931F047169112fcf34f52DbaAE7D18"
	ARUSD  = "0x07D1718fF05a8C53C8F05aDAEd57C0d672945f9a"
	BTCUSD = "0x9C7e0b181474124641b37d5269C1f941d62e5Ce9"
	CVXUSD = "0x9D11ab23d33aD026C466CE3c124928fDb69Ba20E"

	// Leveraged x-tokens
	XETH    = "0xe063F04f280c60aECa68b38341C2eEcBeC703ae2"
	XCVX    = "0xb90e77a19c43b59EbB95Dba10099A5e3D8F979cb"
	XWBTC   = "0x9F23562ae71194A2AE438cdd3A38cec95db93b05"
	XEETH   = "0xF4aBa50E49cA9B9E3B5ED09113367b2ca2357C4A"
	XEZETH  = "0xaA1A259f0cF26f4638F3Ad1e2F23b28df0a65a0F"
	XSTETH  = "0x5a097b014C547718e79030a077A91Ae37679EfF5"
	XFRXETH = "0x2bb0C32101456F5960d4e994Bac183Fe0dc6C82c"

	// Savings and staking
	SavingFxUSD = "0x7743e50F534a7f9F1791DdE7dCD89F7783Eefc39" // fxSAVE
	FXSP        = "0x65C9A641afCEB9C0E6034e558A319488FA0FA3be"
	VEFXN       = "0xEC6B8A3F3605B083F7044C0F31f2cac0caf1d469"
	CVXFXN      = "0x183395DbD0B5e93323a7286D1973150697FFFCB3"

	// Collateral
	StETH  = "0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84"
	WstETH = "0x7f39C581F595B53c5cb19bD0b3f8dA6c935E2Ca0"
	WETH   = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

	// Protocol contracts
	StETHTreasury    = "0x0e5CAA5c889Bdf053c9A76395f62267E653AFbb0"
	FETHMarket       = "0xe7b9c7c9cA85340b8c06FB805f7775e3015108dB"
	FETHGateway      = "0xA5e2Ec4682a32605b9098Ddd7204fe84Ab932fE4"
	FxUSDBasePool    = "0x65C9A641afCEB9C0E6034e558A319488FA0FA3be"
	PoolManager      = "0x250893CA4Ba5d05626C785e8da758026928FCD24"
	ReservePool      = "0xFDEB1a69790AbB23d25ceE2E7bA55Be7C211bE37"
	PegKeeper        = "0x50562fe7e870420F5AAe480B7F94EB4ace2fcd70"
	RebalancePoolReg = "0xfBc0dDCC3Dff4fBC1D4f2Ff0e1BD0c25b6b4A35B"
	SavingsGateway   = "0x5bEf692F754C33DdA0D6E0D1e87760E7178967A1"
	StabilityPool    = "0xAc226802e573c17ca7cA9C3f12fF9A08145AC172"
	VestingFXN       = "0x2290eeFEa24A6E43b26C27187742bD1FEDC10BDB"
	Converter        = "0x11C907b3aeDbD863e551c37f21DD3F36b28A6784"
	FlashLender      = "0x09592dB1aED49Ca7bDc61aEf45CA3d5e53876dFE"

	// Gauges and external protocols
	GaugeController = "0xe60eB8098B34eD775ac44B1ddE864e098C6d7f37"
	ConvexBooster   = "0xF403C135812408BFbE8713b5A23a04b3D48AAE31"
	CurveRegistry   = "0x0000000022D53366457F9d5E68Ec105046FC4383"
	CRV             = "0xD533a949740bb3306d119CC777fa900bA034cd52"
	CVX             = "0x4e3FBD56CD56c3e72c1403e103b45Db9da5B9D2B"
)

// KnownGauges lists the f(x) liquidity gauges used by claim-all
var KnownGauges = []string{
	"0xA5250C540914E012E22e623275E290c4dC993D11", // fxUSD/USDC curve gauge
	"0xfEFafB9446d84A9e58a3A2f2DDDd7219E8c94FbB", // FXN/ETH curve gauge
	"0x5b1D12365BEc01b8b672eE45912d1bbc86305dba", // fETH/xETH balancer gauge
}

// ConvexPoolCatalog is the curated set of f(x) related Convex pools.
// TVL and user balances are read on-chain; the catalog pins identity.
var ConvexPoolCatalog = map[int64]ConvexPoolInfo{
	285: {
		ID:      285,
		Name:    "FXN/ETH",
		LPToken: "0xE06A65e09Ae18096B99770A809BA175FA05960e2",
		Gauge:   "0xA5250C540914E012E22e623275E290c4dC993D11",
		RewardTokens: []string{
			"0xD533a949740bb3306d119CC777fa900bA034cd52", // CRV
			"0x4e3FBD56CD56c3e72c1403e103b45Db9da5B9D2B", // CVX
		},
	},
	311: {
		ID:      311,
		Name:    "fxUSD/USDC",
		LPToken: "0x5018BE882DccE5E3F2f3B0913AE2096B9b3fB61f",
		Gauge:   "0xfEFafB9446d84A9e58a3A2f2DDDd7219E8c94FbB",
		RewardTokens: []string{
			"0xD533a949740bb3306d119CC777fa900bA034cd52", // CRV
			"0x4e3FBD56CD56c3e72c1403e103b45Db9da5B9D2B", // CVX
			"0x365AccFCa291e7D3914637ABf1F7635dB165Bb09", // FXN
		},
	},
	319: {
		ID:      319,
		Name:    "fxUSD/GHO",
		LPToken: "0x74345504Eaea3D9408fC69Ae7EB2d14095643c5b",
		Gauge:   "0xec7c0205a6f0ace125e459b0e6cf1a1f8e125b93",
		RewardTokens: []string{
			"0xD533a949740bb3306d119CC777fa900bA034cd52", // CRV
			"0x4e3FBD56CD56c3e72c1403e103b45Db9da5B9D2B", // CVX
		},
	},
}

// CurvePoolCatalog is the curated set of Curve pools paired with f(x) assets
var CurvePoolCatalog = []CurvePoolInfo{
	{
		PoolAddress: "0x1062FD8eD633c1f080754c19317cb3912810B5e5",
		LPToken:     "0x5018BE882DccE5E3F2f3B0913AE2096B9b3fB61f",
		Gauge:       "0xfEFafB9446d84A9e58a3A2f2DDDd7219E8c94FbB",
	},
	{
		PoolAddress: "0xC15F285679a1Ef2d25F53D4CbD0265E1D02F2A92",
		LPToken:     "0xE06A65e09Ae18096B99770A809BA175FA05960e2",
		Gauge:       "0xA5250C540914E012E22e623275E290c4dC993D11",
	},
}

// Mainnet chain id
const ChainID = 1

// Default gas limits used when estimation is unavailable
const (
	DefaultGasLimit         = int64(500000)
	DefaultTransferGasLimit = int64(100000)
)
