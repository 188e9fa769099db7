package services

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/pkg/cache"
	"github.com/chrisstampar/fx-api/pkg/metrics"
)

const (
	testAddress  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testTxHash   = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
	testGauge    = "0xA5250C540914E012E22e623275E290c4dC993D11"
	testContract = "0x0e5CAA5c889Bdf053c9A76395f62267E653AFbb0"
)

// stubClient overrides the chain reads each test needs. Unimplemented
// methods panic through the embedded nil interface, which catches tests
// touching more of the chain than they claim to.
type stubClient struct {
	sdk.ProtocolClient

	tokenBalanceFn func(tokenAddress, account string) (decimal.Decimal, error)
	v2PoolInfoFn   func() (*sdk.V2PoolInfo, error)
	treasuryNAVFn  func() (*sdk.NAV, error)
	v1NAVFn        func() (*sdk.V1NAV, error)
	broadcastFn    func(rawTx string) (string, error)
	receiptFn      func(txHash string) (*sdk.Receipt, error)
	blockNumberFn  func() (int64, error)
	estimateGasFn  func(from, to, data string, value *big.Int) (*sdk.GasEstimate, error)
}

func (c *stubClient) EndpointURL() string { return "stub" }
func (c *stubClient) Close()              {}

func (c *stubClient) TokenBalance(_ context.Context, tokenAddress, account string) (decimal.Decimal, error) {
	return c.tokenBalanceFn(tokenAddress, account)
}

func (c *stubClient) V2PoolInfo(context.Context) (*sdk.V2PoolInfo, error) {
	return c.v2PoolInfoFn()
}

func (c *stubClient) TreasuryNAV(context.Context) (*sdk.NAV, error) {
	return c.treasuryNAVFn()
}

func (c *stubClient) V1NAV(context.Context) (*sdk.V1NAV, error) {
	return c.v1NAVFn()
}

func (c *stubClient) BroadcastRawTransaction(_ context.Context, rawTx string) (string, error) {
	return c.broadcastFn(rawTx)
}

func (c *stubClient) TransactionReceipt(_ context.Context, txHash string) (*sdk.Receipt, error) {
	return c.receiptFn(txHash)
}

func (c *stubClient) BlockNumber(context.Context) (int64, error) {
	return c.blockNumberFn()
}

func (c *stubClient) EstimateGas(_ context.Context, from, to, data string, value *big.Int) (*sdk.GasEstimate, error) {
	return c.estimateGasFn(from, to, data, value)
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			DefaultTTL: 5 * time.Minute,
			BalanceTTL: 30 * time.Second,
			NAVTTL:     5 * time.Minute,
		},
	}
}

func newTestGateway(t *testing.T, stub *stubClient) *GatewayService {
	t.Helper()
	c := cache.New(time.Minute)
	t.Cleanup(c.Stop)

	factory := func(context.Context, string) (sdk.ProtocolClient, error) {
		return stub, nil
	}
	failover, err := NewFailoverClient([]string{"stub"}, factory, nil)
	require.NoError(t, err)

	return NewGatewayService(failover, c, NewTransactionTracker(), metrics.NewCollector(), testConfig())
}

func poolInfoWithNAV(fNAV, xNAV string) func() (*sdk.V2PoolInfo, error) {
	return func() (*sdk.V2PoolInfo, error) {
		return &sdk.V2PoolInfo{
			BasePoolAddress: sdk.FxUSDBasePool,
			TotalAssets:     decimal.NewFromInt(1000),
			TotalSupply:     decimal.NewFromInt(990),
			NAV: sdk.NAV{
				BaseNAV: decimal.NewFromInt(1),
				FNAV:    decimal.RequireFromString(fNAV),
				XNAV:    decimal.RequireFromString(xNAV),
			},
		}, nil
	}
}

func TestAllBalances(t *testing.T) {
	stub := &stubClient{
		v2PoolInfoFn: poolInfoWithNAV("1", "2000"),
		tokenBalanceFn: func(tokenAddress, account string) (decimal.Decimal, error) {
			switch tokenAddress {
			case sdk.FXUSD:
				return decimal.NewFromInt(100), nil
			case sdk.XETH:
				return decimal.RequireFromString("0.5"), nil
			default:
				return decimal.Zero, nil
			}
		},
	}
	gw := newTestGateway(t, stub)

	resp, cached, err := gw.AllBalances(context.Background(), testAddress)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, testAddress, resp.Address)
	assert.Len(t, resp.Balances, len(SupportedTokenNames()))
	assert.Equal(t, "100", resp.Balances["fxusd"])
	assert.Equal(t, "0.5", resp.Balances["xeth"])
	assert.Equal(t, "0", resp.Balances["fxn"])
	// 100*1 + 0.5*2000
	require.NotNil(t, resp.TotalUSDValue)
	assert.Equal(t, "1100.00", *resp.TotalUSDValue)

	// Second call is served from cache.
	_, cached, err = gw.AllBalances(context.Background(), testAddress)
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestAllBalancesInvalidAddress(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	_, _, err := gw.AllBalances(context.Background(), "not-an-address")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrInvalidAddress, appErr.Code)
}

func TestAllBalancesPartialFailureNotCached(t *testing.T) {
	stub := &stubClient{
		v2PoolInfoFn: poolInfoWithNAV("1", "2000"),
		tokenBalanceFn: func(tokenAddress, account string) (decimal.Decimal, error) {
			switch tokenAddress {
			case sdk.FXN:
				return decimal.Zero, &sdk.ContractCallError{Op: "balanceOf", Err: errors.New("boom")}
			case sdk.FXUSD:
				return decimal.NewFromInt(1), nil
			default:
				return decimal.Zero, nil
			}
		},
	}
	gw := newTestGateway(t, stub)

	resp, cached, err := gw.AllBalances(context.Background(), testAddress)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "0", resp.Balances["fxn"])

	// Degraded result must not be cached.
	_, cached, err = gw.AllBalances(context.Background(), testAddress)
	require.NoError(t, err)
	assert.False(t, cached)
}

func TestTokenBalance(t *testing.T) {
	stub := &stubClient{
		tokenBalanceFn: func(tokenAddress, account string) (decimal.Decimal, error) {
			assert.Equal(t, sdk.FXUSD, tokenAddress)
			return decimal.NewFromInt(42), nil
		},
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.TokenBalance(context.Background(), testAddress, "FXUSD")
	require.NoError(t, err)
	assert.Equal(t, "fxusd", resp.Token)
	assert.Equal(t, "42", resp.Balance)
	assert.Equal(t, sdk.FXUSD, resp.TokenAddress)
}

func TestTokenBalanceUnsupportedToken(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	_, err := gw.TokenBalance(context.Background(), testAddress, "doge")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrUnsupportedToken, appErr.Code)
}

func TestBatchBalancesDegradesPerAddress(t *testing.T) {
	stub := &stubClient{
		v2PoolInfoFn: poolInfoWithNAV("1", "1"),
		tokenBalanceFn: func(tokenAddress, account string) (decimal.Decimal, error) {
			return decimal.Zero, nil
		},
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.BatchBalances(context.Background(), []string{testAddress, "bogus"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.NotNil(t, resp.Results[testAddress])
	assert.Nil(t, resp.Results["bogus"])
}

func TestProtocolNAVFallbackChain(t *testing.T) {
	stub := &stubClient{
		v2PoolInfoFn: func() (*sdk.V2PoolInfo, error) {
			return nil, &sdk.ContractCallError{Op: "nav", Err: errors.New("no v2")}
		},
		treasuryNAVFn: func() (*sdk.NAV, error) {
			return &sdk.NAV{
				BaseNAV: decimal.RequireFromString("2900.10"),
				FNAV:    decimal.RequireFromString("1.001"),
				XNAV:    decimal.RequireFromString("1800.5"),
			}, nil
		},
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.ProtocolNAV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "treasury", resp.Source)
	assert.Equal(t, "1.001", resp.FNAV)
	assert.Equal(t, "1800.5", resp.XNAV)
}

func TestProtocolNAVV1Fallback(t *testing.T) {
	failure := &sdk.ContractCallError{Op: "nav", Err: errors.New("unavailable")}
	stub := &stubClient{
		v2PoolInfoFn:  func() (*sdk.V2PoolInfo, error) { return nil, failure },
		treasuryNAVFn: func() (*sdk.NAV, error) { return nil, failure },
		v1NAVFn: func() (*sdk.V1NAV, error) {
			return &sdk.V1NAV{
				FNAV: decimal.RequireFromString("1.0005"),
				XNAV: decimal.RequireFromString("1500"),
			}, nil
		},
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.ProtocolNAV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1_market", resp.Source)
	assert.NotEmpty(t, resp.Note)
	assert.Equal(t, "1", resp.BaseNAV)
}

func TestProtocolNAVCached(t *testing.T) {
	calls := 0
	stub := &stubClient{
		v2PoolInfoFn: func() (*sdk.V2PoolInfo, error) {
			calls++
			return poolInfoWithNAV("1.01", "2500")()
		},
	}
	gw := newTestGateway(t, stub)

	for i := 0; i < 3; i++ {
		_, err := gw.ProtocolNAV(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestTokenNAV(t *testing.T) {
	stub := &stubClient{v2PoolInfoFn: poolInfoWithNAV("1.02", "2500")}
	gw := newTestGateway(t, stub)

	resp, err := gw.TokenNAV(context.Background(), "feth")
	require.NoError(t, err)
	assert.Equal(t, "1.02", resp.NAV)

	resp, err = gw.TokenNAV(context.Background(), "xETH")
	require.NoError(t, err)
	assert.Equal(t, "2500", resp.NAV)

	_, err = gw.TokenNAV(context.Background(), "fxusd")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrUnsupportedToken, appErr.Code)
}

func TestBatchNAV(t *testing.T) {
	stub := &stubClient{v2PoolInfoFn: poolInfoWithNAV("1.02", "2500")}
	gw := newTestGateway(t, stub)

	resp, err := gw.BatchNAV(context.Background(), []string{"feth", "xeth", "fxusd"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	require.NotNil(t, resp.Results["feth"])
	assert.Equal(t, "1.02", resp.Results["feth"].NAV)
	require.NotNil(t, resp.Results["xeth"])
	assert.Equal(t, "2500", resp.Results["xeth"].NAV)
	assert.Nil(t, resp.Results["fxusd"])
}

func TestConvexPoolsPagination(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	resp, err := gw.ConvexPools(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalPools)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Pools, 2)
	assert.Contains(t, resp.Pools, int64(285))
	assert.Contains(t, resp.Pools, int64(311))

	resp, err = gw.ConvexPools(2, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Pools, 1)
	assert.Contains(t, resp.Pools, int64(319))

	_, err = gw.ConvexPools(0, 10)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrInvalidPagination, appErr.Code)
}

func TestBroadcast(t *testing.T) {
	stub := &stubClient{
		broadcastFn: func(rawTx string) (string, error) {
			assert.Equal(t, "0x02f87001", rawTx)
			return testTxHash, nil
		},
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.Broadcast(context.Background(), "0x02f87001")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, testTxHash, resp.TransactionHash)
	assert.Equal(t, sdk.StatusPending, resp.Status)

	tracked := gw.Tracker().Get(testTxHash)
	require.NotNil(t, tracked)
	assert.Equal(t, sdk.StatusPending, tracked.Status)
}

func TestBroadcastRejectsInvalidPayload(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	_, err := gw.Broadcast(context.Background(), "not-hex")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrInvalidTransactionFormat, appErr.Code)
}

func TestTransactionStatusConfirmed(t *testing.T) {
	stub := &stubClient{
		receiptFn: func(txHash string) (*sdk.Receipt, error) {
			return &sdk.Receipt{
				Status:            1,
				BlockNumber:       19000000,
				GasUsed:           21000,
				EffectiveGasPrice: big.NewInt(20000000000),
			}, nil
		},
		blockNumberFn: func() (int64, error) { return 19000004, nil },
	}
	gw := newTestGateway(t, stub)
	gw.Tracker().Track(testTxHash, "", "")

	resp, err := gw.TransactionStatus(context.Background(), testTxHash)
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusConfirmed, resp.Status)
	require.NotNil(t, resp.Confirmations)
	assert.Equal(t, int64(5), *resp.Confirmations)
	assert.Equal(t, "20000000000", resp.EffectiveGasPrice)

	// The tracker record is promoted.
	assert.Equal(t, sdk.StatusConfirmed, gw.Tracker().Get(testTxHash).Status)
}

func TestTransactionStatusReverted(t *testing.T) {
	stub := &stubClient{
		receiptFn: func(string) (*sdk.Receipt, error) {
			return &sdk.Receipt{Status: 0, BlockNumber: 19000000, GasUsed: 53000}, nil
		},
		blockNumberFn: func() (int64, error) { return 19000001, nil },
	}
	gw := newTestGateway(t, stub)

	resp, err := gw.TransactionStatus(context.Background(), testTxHash)
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusFailed, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func TestTransactionStatusPendingAndNotFound(t *testing.T) {
	stub := &stubClient{
		receiptFn: func(string) (*sdk.Receipt, error) { return nil, ethereum.NotFound },
	}
	gw := newTestGateway(t, stub)

	// Unknown to the tracker and the chain.
	resp, err := gw.TransactionStatus(context.Background(), testTxHash)
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusNotFound, resp.Status)

	// Broadcast through this API but no receipt yet.
	gw.Tracker().Track(testTxHash, "", "")
	resp, err = gw.TransactionStatus(context.Background(), testTxHash)
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusPending, resp.Status)
}

func TestTransactionStatusInvalidHash(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	_, err := gw.TransactionStatus(context.Background(), "0x123")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrInvalidTransactionHash, appErr.Code)
}

func TestPrepareTxWithGasEstimate(t *testing.T) {
	stub := &stubClient{
		estimateGasFn: func(from, to, data string, value *big.Int) (*sdk.GasEstimate, error) {
			assert.Equal(t, testAddress, from)
			return &sdk.GasEstimate{Gas: 150000, CostWei: big.NewInt(3000000000000000)}, nil
		},
	}
	gw := newTestGateway(t, stub)

	build := func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return &sdk.TxData{
			To:      testContract,
			Data:    "0xabcdef",
			Value:   "0",
			Gas:     200000,
			Nonce:   7,
			ChainID: sdk.ChainID,
		}, nil
	}

	resp, err := gw.PrepareTx(context.Background(), testAddress, build)
	require.NoError(t, err)
	assert.Equal(t, testContract, resp.To)
	assert.Equal(t, int64(7), resp.Nonce)
	require.NotNil(t, resp.EstimatedGas)
	assert.Equal(t, int64(150000), *resp.EstimatedGas)
	assert.Equal(t, "3000000000000000", resp.EstimatedGasCostWei)
}

func TestPrepareTxEstimateFailureDegrades(t *testing.T) {
	stub := &stubClient{
		estimateGasFn: func(string, string, string, *big.Int) (*sdk.GasEstimate, error) {
			return nil, &sdk.ContractCallError{Op: "estimate", Err: errors.New("revert")}
		},
	}
	gw := newTestGateway(t, stub)

	build := func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
		return &sdk.TxData{To: testContract, Data: "0x", Value: "0", Gas: 100000, ChainID: sdk.ChainID}, nil
	}

	resp, err := gw.PrepareTx(context.Background(), testAddress, build)
	require.NoError(t, err)
	assert.Nil(t, resp.EstimatedGas)
	assert.Empty(t, resp.EstimatedGasCostWei)
}

func TestPrepareTxs(t *testing.T) {
	gw := newTestGateway(t, &stubClient{})

	builds := []TxBuilder{
		func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
			return &sdk.TxData{To: testContract, Nonce: 1, ChainID: sdk.ChainID}, nil
		},
		func(ctx context.Context, client sdk.ProtocolClient) (*sdk.TxData, error) {
			return &sdk.TxData{To: testContract, Nonce: 2, ChainID: sdk.ChainID}, nil
		},
	}

	resp, err := gw.PrepareTxs(context.Background(), "", builds)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(1), resp.Transactions[0].Nonce)
	assert.Equal(t, int64(2), resp.Transactions[1].Nonce)
}
