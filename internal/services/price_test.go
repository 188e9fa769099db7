package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisstampar/fx-api/internal/sdk"
)

func newTestCoinGecko(t *testing.T, prices map[string]string) *CoinGeckoClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("ids")
		price, ok := prices[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"%s":{"usd":%s}}`, id, price)
	}))
	t.Cleanup(server.Close)

	client := NewCoinGeckoClient()
	client.baseURL = server.URL
	return client
}

func staticNAV(fNAV, xNAV string) NAVSource {
	return func(context.Context) (*sdk.NAV, error) {
		return &sdk.NAV{
			BaseNAV: decimal.NewFromInt(1),
			FNAV:    decimal.RequireFromString(fNAV),
			XNAV:    decimal.RequireFromString(xNAV),
		}, nil
	}
}

func TestPriceStablecoins(t *testing.T) {
	ps := NewPriceService(newTestCoinGecko(t, nil), staticNAV("1", "1"))

	for _, symbol := range []string{"fxusd", "rusd", "arusd", "btcusd", "cvxusd", "fxsave", "fxsp"} {
		price, err := ps.TokenPrice(context.Background(), symbol)
		require.NoError(t, err, symbol)
		require.NotNil(t, price, symbol)
		assert.True(t, price.Equal(decimal.NewFromInt(1)), symbol)
	}
}

func TestPriceNavTokens(t *testing.T) {
	ps := NewPriceService(newTestCoinGecko(t, nil), staticNAV("1.02", "2860.5"))

	price, err := ps.TokenPrice(context.Background(), "feth")
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.True(t, price.Equal(decimal.RequireFromString("1.02")))

	for _, symbol := range []string{"xeth", "xsteth", "xfrxeth"} {
		price, err := ps.TokenPrice(context.Background(), symbol)
		require.NoError(t, err, symbol)
		require.NotNil(t, price, symbol)
		assert.True(t, price.Equal(decimal.RequireFromString("2860.5")), symbol)
	}
}

func TestPriceGovernanceTokens(t *testing.T) {
	cg := newTestCoinGecko(t, map[string]string{
		"function-x":     "120.5",
		"convex-finance": "3.2",
	})
	ps := NewPriceService(cg, staticNAV("1", "1"))

	price, err := ps.TokenPrice(context.Background(), "fxn")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("120.5")))

	// veFXN is discounted spot FXN.
	price, err = ps.TokenPrice(context.Background(), "vefxn")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("96.4")))

	// xCVX tracks CVX, not the x-token NAV.
	price, err = ps.TokenPrice(context.Background(), "xcvx")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("3.2")))

	price, err = ps.TokenPrice(context.Background(), "cvxfxn")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("3.2")))
}

func TestPriceUnknownToken(t *testing.T) {
	ps := NewPriceService(newTestCoinGecko(t, nil), staticNAV("1", "1"))

	price, err := ps.TokenPrice(context.Background(), "weth")
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestPriceCaching(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"function-x":{"usd":100}}`)
	}))
	t.Cleanup(server.Close)
	cg := NewCoinGeckoClient()
	cg.baseURL = server.URL

	ps := NewPriceService(cg, staticNAV("1", "1"))

	for i := 0; i < 3; i++ {
		_, err := ps.TokenPrice(context.Background(), "fxn")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, ps.CacheSize())

	ps.ClearCache()
	_, err := ps.TokenPrice(context.Background(), "fxn")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPriceNavSourceError(t *testing.T) {
	navErr := errors.New("nav unavailable")
	ps := NewPriceService(newTestCoinGecko(t, nil), func(context.Context) (*sdk.NAV, error) {
		return nil, navErr
	})

	_, err := ps.TokenPrice(context.Background(), "feth")
	assert.ErrorIs(t, err, navErr)
}

func TestCalculateTotalUSDValue(t *testing.T) {
	cg := newTestCoinGecko(t, map[string]string{"function-x": "100"})
	ps := NewPriceService(cg, staticNAV("1", "2000"))

	balances := map[string]decimal.Decimal{
		"fxusd": decimal.RequireFromString("50"),
		"xeth":  decimal.RequireFromString("0.5"),
		"fxn":   decimal.RequireFromString("2"),
		"xcvx":  decimal.Zero, // zero balances never trigger a lookup
	}

	total, err := ps.CalculateTotalUSDValue(context.Background(), balances)
	require.NoError(t, err)
	require.NotNil(t, total)
	// 50*1 + 0.5*2000 + 2*100 = 1250
	assert.True(t, total.Equal(decimal.RequireFromString("1250")))
}

func TestCalculateTotalUSDValueFailsOnLookupError(t *testing.T) {
	cg := newTestCoinGecko(t, nil) // every CoinGecko id 404s
	ps := NewPriceService(cg, staticNAV("1", "1"))

	balances := map[string]decimal.Decimal{
		"fxn": decimal.NewFromInt(1),
	}
	_, err := ps.CalculateTotalUSDValue(context.Background(), balances)
	assert.Error(t, err)
}
