package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/internal/services"
	"github.com/chrisstampar/fx-api/pkg/cache"
	"github.com/chrisstampar/fx-api/pkg/metrics"
	"github.com/chrisstampar/fx-api/pkg/ratelimiter"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// stubChain fakes the chain reads the route tests touch
type stubChain struct {
	sdk.ProtocolClient

	balances map[string]decimal.Decimal
	nav      *sdk.NAV
}

func (c *stubChain) EndpointURL() string            { return "stub" }
func (c *stubChain) Close()                         {}
func (c *stubChain) Connected(context.Context) bool { return true }

func (c *stubChain) TokenBalance(_ context.Context, tokenAddress, _ string) (decimal.Decimal, error) {
	if balance, ok := c.balances[tokenAddress]; ok {
		return balance, nil
	}
	return decimal.Zero, nil
}

func (c *stubChain) V2PoolInfo(context.Context) (*sdk.V2PoolInfo, error) {
	return &sdk.V2PoolInfo{
		BasePoolAddress: sdk.FxUSDBasePool,
		TotalAssets:     decimal.NewFromInt(1000),
		TotalSupply:     decimal.NewFromInt(990),
		NAV:             *c.nav,
	}, nil
}

func (c *stubChain) BroadcastRawTransaction(_ context.Context, _ string) (string, error) {
	return "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b", nil
}

func (c *stubChain) TransactionReceipt(_ context.Context, _ string) (*sdk.Receipt, error) {
	return nil, ethereum.NotFound
}

func (c *stubChain) BuildTransferTx(_ context.Context, tokenAddress, recipient, amount, from string) (*sdk.TxData, error) {
	return &sdk.TxData{
		To:      tokenAddress,
		Data:    "0xa9059cbb",
		Value:   "0",
		Gas:     sdk.DefaultTransferGasLimit,
		Nonce:   3,
		ChainID: sdk.ChainID,
	}, nil
}

func defaultStub() *stubChain {
	return &stubChain{
		balances: map[string]decimal.Decimal{
			sdk.FXUSD: decimal.NewFromInt(100),
		},
		nav: &sdk.NAV{
			BaseNAV: decimal.NewFromInt(1),
			FNAV:    decimal.RequireFromString("1.01"),
			XNAV:    decimal.RequireFromString("2500"),
		},
	}
}

func newTestServer(t *testing.T, stub *stubChain) *gin.Engine {
	t.Helper()
	c := cache.New(time.Minute)
	t.Cleanup(c.Stop)

	factory := func(context.Context, string) (sdk.ProtocolClient, error) { return stub, nil }
	failover, err := services.NewFailoverClient([]string{"stub"}, factory, nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Version:        "test",
			Environment:    "test",
			AllowedOrigins: []string{"*"},
		},
		Cache: config.CacheConfig{
			DefaultTTL: 5 * time.Minute,
			BalanceTTL: 30 * time.Second,
			NAVTTL:     5 * time.Minute,
		},
	}

	collector := metrics.NewCollector()
	service := services.NewGatewayService(failover, c, services.NewTransactionTracker(), collector, cfg)

	return NewRouter(service, collector, cfg, RateLimiters{
		Read:  ratelimiter.New(1000, time.Minute),
		Write: ratelimiter.New(1000, time.Minute),
	})
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestGetAllBalancesRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/balances/"+testAddress, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, testAddress, body["address"])
	balances := body["balances"].(map[string]interface{})
	assert.Equal(t, "100", balances["fxusd"])
}

func TestGetAllBalancesInvalidAddress(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/balances/nonsense", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "INVALID_ADDRESS", body["code"])
	assert.NotEmpty(t, body["message"])
}

func TestStaticTokenBalanceRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/balances/"+testAddress+"/fxusd", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "fxusd", body["token"])
	assert.Equal(t, "100", body["balance"])
}

func TestBatchBalancesValidation(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/balances/batch", `{"addresses":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	addresses := make([]string, 101)
	for i := range addresses {
		addresses[i] = testAddress
	}
	payload, err := json.Marshal(map[string]interface{}{"addresses": addresses})
	require.NoError(t, err)
	w = doRequest(router, http.MethodPost, "/v1/balances/batch", string(payload))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBatchBalancesRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/balances/batch",
		`{"addresses":["`+testAddress+`"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	results := body["results"].(map[string]interface{})
	assert.Contains(t, results, testAddress)
}

func TestProtocolNAVRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/protocol/nav", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "v2_pool", body["source"])
	assert.Equal(t, "1.01", body["f_nav"])
	assert.Equal(t, "2500", body["x_nav"])
}

func TestTokenNAVRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/protocol/nav/feth", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "1.01", body["nav"])

	w = doRequest(router, http.MethodGet, "/v1/protocol/nav/fxusd", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_TOKEN", decodeBody(t, w)["code"])
}

func TestBatchNAVValidation(t *testing.T) {
	router := newTestServer(t, defaultStub())

	tokens := make([]string, 21)
	for i := range tokens {
		tokens[i] = "feth"
	}
	payload, err := json.Marshal(map[string]interface{}{"tokens": tokens})
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/v1/protocol/nav/batch", string(payload))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["code"])
}

func TestConvexPoolsRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet, "/v1/convex/pools?page=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["total_pools"])

	w = doRequest(router, http.MethodGet, "/v1/convex/pools?page=0", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PAGINATION", decodeBody(t, w)["code"])
}

func TestCurveGaugeBalanceRequiresUser(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet,
		"/v1/curve/gauge/0xA5250C540914E012E22e623275E290c4dC993D11/balance", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_PARAMETER", decodeBody(t, w)["code"])
}

func TestBroadcastRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/transactions/broadcast",
		`{"rawTransaction":"0x02f87001"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pending", body["status"])
}

func TestBroadcastRouteSchemaValidation(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/transactions/broadcast", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["code"])
}

func TestTransactionStatusRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodGet,
		"/v1/transactions/0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["status"])

	w = doRequest(router, http.MethodGet, "/v1/transactions/0x123/status", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TRANSACTION_HASH", decodeBody(t, w)["code"])
}

func TestPrepareTransferRoute(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/transactions/transfer/prepare",
		`{"token_address":"`+sdk.FXUSD+`","recipient_address":"`+testAddress+`","amount":"1.5"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, sdk.FXUSD, body["to"])
	assert.Equal(t, "0xa9059cbb", body["data"])
	assert.Equal(t, float64(sdk.ChainID), body["chainId"])
}

func TestPrepareTransferRejectsBadAmount(t *testing.T) {
	router := newTestServer(t, defaultStub())

	w := doRequest(router, http.MethodPost, "/v1/transactions/transfer/prepare",
		`{"token_address":"`+sdk.FXUSD+`","recipient_address":"`+testAddress+`","amount":"-5"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", decodeBody(t, w)["code"])
}

func TestRateLimitEnvelope(t *testing.T) {
	stub := defaultStub()
	c := cache.New(time.Minute)
	t.Cleanup(c.Stop)
	factory := func(context.Context, string) (sdk.ProtocolClient, error) { return stub, nil }
	failover, err := services.NewFailoverClient([]string{"stub"}, factory, nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Version: "test", Environment: "test", AllowedOrigins: []string{"*"}},
		Cache:  config.CacheConfig{DefaultTTL: time.Minute, BalanceTTL: time.Minute, NAVTTL: time.Minute},
	}
	collector := metrics.NewCollector()
	service := services.NewGatewayService(failover, c, services.NewTransactionTracker(), collector, cfg)
	router := NewRouter(service, collector, cfg, RateLimiters{
		Read:  ratelimiter.New(1, time.Minute),
		Write: ratelimiter.New(1, time.Minute),
	})

	w := doRequest(router, http.MethodGet, "/v1/protocol/nav", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = doRequest(router, http.MethodGet, "/v1/protocol/nav", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["code"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
