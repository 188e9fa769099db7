package services

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/pkg/logger"
)

// NAVSource provides the current protocol NAV for NAV-priced tokens
type NAVSource func(ctx context.Context) (*sdk.NAV, error)

// stablePriceTokens are pegged assets priced at 1 USD
var stablePriceTokens = map[string]bool{
	"fxusd":  true,
	"rusd":   true,
	"arusd":  true,
	"btcusd": true,
	"cvxusd": true,
	"fxsave": true,
	"fxsp":   true,
}

// veFXN is non-transferable locked FXN; it is valued at a flat discount
// to spot FXN.
var veFXNDiscount = decimal.RequireFromString("0.8")

// PriceService resolves USD prices for registry tokens. Pegged tokens
// are fixed at 1, f/x tokens follow the protocol NAV, governance tokens
// come from CoinGecko. Resolved prices are cached until ClearCache.
type PriceService struct {
	coingecko *CoinGeckoClient
	navSource NAVSource

	mu    sync.RWMutex
	cache map[string]decimal.Decimal
}

func NewPriceService(coingecko *CoinGeckoClient, navSource NAVSource) *PriceService {
	return &PriceService{
		coingecko: coingecko,
		navSource: navSource,
		cache:     make(map[string]decimal.Decimal),
	}
}

// TokenPrice returns the USD price for a token symbol. Tokens without a
// pricing rule return a nil price and no error.
func (p *PriceService) TokenPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	lower := strings.ToLower(strings.TrimSpace(symbol))

	p.mu.RLock()
	if cached, ok := p.cache[lower]; ok {
		p.mu.RUnlock()
		return &cached, nil
	}
	p.mu.RUnlock()

	price, err := p.resolve(ctx, lower)
	if err != nil {
		return nil, err
	}
	if price == nil {
		logger.GetLogger().Debug("no pricing rule for token", zap.String("token", lower))
		return nil, nil
	}

	p.mu.Lock()
	p.cache[lower] = *price
	p.mu.Unlock()
	return price, nil
}

func (p *PriceService) resolve(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	if stablePriceTokens[symbol] {
		one := decimal.NewFromInt(1)
		return &one, nil
	}

	switch symbol {
	case "xcvx":
		// xCVX tracks CVX rather than the protocol NAV.
		price, err := p.coingecko.SimplePrice(ctx, coinGeckoCVX)
		if err != nil {
			return nil, err
		}
		return &price, nil
	case "fxn":
		price, err := p.coingecko.SimplePrice(ctx, coinGeckoFXN)
		if err != nil {
			return nil, err
		}
		return &price, nil
	case "vefxn":
		price, err := p.coingecko.SimplePrice(ctx, coinGeckoFXN)
		if err != nil {
			return nil, err
		}
		discounted := price.Mul(veFXNDiscount)
		return &discounted, nil
	case "cvxfxn":
		price, err := p.coingecko.SimplePrice(ctx, coinGeckoCVX)
		if err != nil {
			return nil, err
		}
		return &price, nil
	}

	if leg, ok := IsNavToken(symbol); ok {
		nav, err := p.navSource(ctx)
		if err != nil {
			return nil, err
		}
		switch leg {
		case "f_nav":
			return &nav.FNAV, nil
		default:
			return &nav.XNAV, nil
		}
	}

	return nil, nil
}

// CalculateTotalUSDValue sums the USD value of a balance map. Zero
// balances and tokens without a pricing rule are skipped; a failed price
// lookup fails the whole total so callers can degrade cleanly.
func (p *PriceService) CalculateTotalUSDValue(ctx context.Context, balances map[string]decimal.Decimal) (*decimal.Decimal, error) {
	total := decimal.Zero
	for symbol, balance := range balances {
		if balance.IsZero() {
			continue
		}
		price, err := p.TokenPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if price == nil {
			continue
		}
		total = total.Add(balance.Mul(*price))
	}
	return &total, nil
}

// ClearCache drops every cached price
func (p *PriceService) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]decimal.Decimal)
}

// CacheSize returns the number of cached prices
func (p *PriceService) CacheSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.cache)
}
