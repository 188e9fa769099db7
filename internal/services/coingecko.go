package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const defaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGecko asset ids for tokens whose price is not derived on-chain
const (
	coinGeckoFXN = "function-x"
	coinGeckoCVX = "convex-finance"
)

// CoinGeckoClient fetches USD spot prices from the CoinGecko simple
// price endpoint
type CoinGeckoClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultCoinGeckoBaseURL,
	}
}

// SimplePrice returns the USD price for a CoinGecko asset id
func (c *CoinGeckoClient) SimplePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building CoinGecko request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("CoinGecko request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("CoinGecko returned status %d", resp.StatusCode)
	}

	var payload map[string]map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("decoding CoinGecko response: %w", err)
	}

	raw, ok := payload[id]["usd"]
	if !ok {
		return decimal.Zero, fmt.Errorf("CoinGecko response missing price for %s", id)
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing CoinGecko price for %s: %w", id, err)
	}
	return price, nil
}
