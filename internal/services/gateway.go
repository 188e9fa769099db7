package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/internal/config"
	"github.com/chrisstampar/fx-api/internal/models"
	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/internal/validation"
	"github.com/chrisstampar/fx-api/pkg/cache"
	"github.com/chrisstampar/fx-api/pkg/logger"
	"github.com/chrisstampar/fx-api/pkg/metrics"
	"github.com/chrisstampar/fx-api/pkg/mutex"
)

// GatewayService is the service layer behind every handler. It owns the
// failover RPC access, response caching, price resolution and the
// broadcast tracker.
type GatewayService struct {
	failover  *FailoverClient
	cache     *cache.Cache
	tracker   *TransactionTracker
	price     *PriceService
	locks     *mutex.KeyedMutex
	collector *metrics.Collector
	cfg       *config.Config
}

func NewGatewayService(failover *FailoverClient, c *cache.Cache, tracker *TransactionTracker, collector *metrics.Collector, cfg *config.Config) *GatewayService {
	s := &GatewayService{
		failover:  failover,
		cache:     c,
		tracker:   tracker,
		locks:     mutex.NewKeyedMutex(),
		collector: collector,
		cfg:       cfg,
	}
	s.price = NewPriceService(NewCoinGeckoClient(), s.navForPricing)
	return s
}

// Price exposes the price service for cache management endpoints
func (s *GatewayService) Price() *PriceService { return s.price }

// Tracker exposes the broadcast tracker for stats and cleanup
func (s *GatewayService) Tracker() *TransactionTracker { return s.tracker }

// Locks exposes the per-resource lock table for background cleanup
func (s *GatewayService) Locks() *mutex.KeyedMutex { return s.locks }

// Failover exposes the RPC failover layer for health checks
func (s *GatewayService) Failover() *FailoverClient { return s.failover }

// call runs fn through the failover layer and records RPC metrics
func (s *GatewayService) call(ctx context.Context, label string, fn func(client sdk.ProtocolClient) error) error {
	start := time.Now()
	err := s.failover.Call(ctx, label, fn)
	if s.collector != nil {
		s.collector.RecordRPCCall(time.Since(start), err == nil)
	}
	return err
}

// toAppError maps chain-layer failures onto the error envelope. The
// failover wrapper unwraps to the last underlying error, so errors.As
// sees through it.
func toAppError(err error) *models.AppError {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var callErr *sdk.ContractCallError
	if errors.As(err, &callErr) {
		return models.NewAppError(models.ErrContractCall, callErr.Error(), err)
	}
	var broadcastErr *sdk.BroadcastError
	if errors.As(err, &broadcastErr) {
		return models.NewAppError(models.ErrBroadcast, broadcastErr.Error(), err)
	}
	var exhausted *EndpointsExhaustedError
	if errors.As(err, &exhausted) {
		return models.NewAppError(models.ErrInternal, "all RPC endpoints are unavailable", err)
	}
	return models.NewAppError(models.ErrInternal, "an unexpected error occurred", err)
}

// checksummedAddress validates an address and normalizes it to EIP-55 form
func checksummedAddress(address string) (string, *models.AppError) {
	normalized, err := validation.ChecksumAddress(address)
	if err != nil {
		return "", models.NewAppError(models.ErrInvalidAddress,
			fmt.Sprintf("invalid Ethereum address: %s", address), err)
	}
	return normalized, nil
}

func (s *GatewayService) cacheGet(key string) (interface{}, bool) {
	value, ok := s.cache.Get(key)
	if s.collector != nil {
		if ok {
			s.collector.RecordCacheHit()
		} else {
			s.collector.RecordCacheMiss()
		}
	}
	return value, ok
}

// ---- Balances ----

type tokenBalanceResult struct {
	token   string
	balance decimal.Decimal
	err     error
}

// AllBalances returns every supported token balance for an address. The
// boolean reports whether the response came from cache. The USD total
// degrades to nil when the price index is unavailable; a degraded
// response is never cached so the total can recover on the next call.
func (s *GatewayService) AllBalances(ctx context.Context, address string) (*models.AllBalancesResponse, bool, error) {
	checksummed, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, false, appErr
	}

	key := cache.Key("balances", checksummed)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.AllBalancesResponse), true, nil
	}

	// Serialize concurrent fetches for the same address so a burst of
	// requests produces one RPC fan-out.
	s.locks.Lock(key)
	defer s.locks.Unlock(key)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.AllBalancesResponse), true, nil
	}

	names := SupportedTokenNames()
	results := make([]tokenBalanceResult, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			spec := supportedTokens[name]
			var balance decimal.Decimal
			err := s.call(ctx, "token_balance", func(client sdk.ProtocolClient) error {
				var callErr error
				balance, callErr = client.TokenBalance(ctx, spec.Address, checksummed)
				return callErr
			})
			results[i] = tokenBalanceResult{token: name, balance: balance, err: err}
		}(i, name)
	}
	wg.Wait()

	log := logger.GetLogger()
	balances := make(map[string]string, len(names))
	decimals := make(map[string]decimal.Decimal, len(names))
	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			log.Warn("token balance lookup failed",
				zap.String("token", r.token),
				zap.String("address", checksummed),
				zap.Error(r.err))
			balances[r.token] = "0"
			continue
		}
		balances[r.token] = r.balance.String()
		decimals[r.token] = r.balance
	}
	if failures == len(names) {
		return nil, false, toAppError(results[0].err)
	}

	resp := &models.AllBalancesResponse{
		Address:  checksummed,
		Balances: balances,
	}

	// Partial data stays uncached and gets no USD total.
	if failures > 0 {
		return resp, false, nil
	}

	total, err := s.price.CalculateTotalUSDValue(ctx, decimals)
	if err != nil {
		log.Warn("USD total unavailable", zap.String("address", checksummed), zap.Error(err))
		return resp, false, nil
	}
	totalStr := total.StringFixed(2)
	resp.TotalUSDValue = &totalStr

	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, false, nil
}

// TokenBalance returns a single registry token balance for an address
func (s *GatewayService) TokenBalance(ctx context.Context, address, token string) (*models.BalanceResponse, error) {
	checksummed, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}
	name, spec, err := ResolveToken(token)
	if err != nil {
		return nil, models.NewAppError(models.ErrUnsupportedToken, err.Error(), nil)
	}

	key := cache.Key("balance", checksummed, name)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.BalanceResponse), nil
	}

	var balance decimal.Decimal
	err = s.call(ctx, "token_balance", func(client sdk.ProtocolClient) error {
		var callErr error
		balance, callErr = client.TokenBalance(ctx, spec.Address, checksummed)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.BalanceResponse{
		Address:      checksummed,
		Token:        name,
		Balance:      balance.String(),
		TokenAddress: spec.Address,
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// TokenBalanceByAddress returns the balance of an arbitrary ERC-20
func (s *GatewayService) TokenBalanceByAddress(ctx context.Context, address, tokenAddress string) (*models.BalanceResponse, error) {
	checksummed, appErr := checksummedAddress(address)
	if appErr != nil {
		return nil, appErr
	}
	tokenChecksummed, appErr := checksummedAddress(tokenAddress)
	if appErr != nil {
		return nil, appErr
	}

	key := cache.Key("balance_by_address", checksummed, tokenChecksummed)
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*models.BalanceResponse), nil
	}

	var balance decimal.Decimal
	err := s.call(ctx, "token_balance", func(client sdk.ProtocolClient) error {
		var callErr error
		balance, callErr = client.TokenBalance(ctx, tokenChecksummed, checksummed)
		return callErr
	})
	if err != nil {
		return nil, toAppError(err)
	}

	resp := &models.BalanceResponse{
		Address:      checksummed,
		Token:        tokenChecksummed,
		Balance:      balance.String(),
		TokenAddress: tokenChecksummed,
	}
	s.cache.Set(key, resp, s.cfg.Cache.BalanceTTL)
	return resp, nil
}

// BatchBalances resolves balances for up to maxBatchAddresses addresses
// in parallel. A failed address yields a nil entry rather than failing
// the batch.
func (s *GatewayService) BatchBalances(ctx context.Context, addresses []string) (*models.BatchBalancesResponse, error) {
	type batchResult struct {
		address string
		resp    *models.AllBalancesResponse
		cached  bool
	}

	results := make([]batchResult, len(addresses))
	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			resp, cached, err := s.AllBalances(ctx, address)
			if err != nil {
				logger.GetLogger().Warn("batch balance entry failed",
					zap.String("address", address), zap.Error(err))
				results[i] = batchResult{address: address}
				return
			}
			results[i] = batchResult{address: address, resp: resp, cached: cached}
		}(i, address)
	}
	wg.Wait()

	out := &models.BatchBalancesResponse{
		Results: make(map[string]*models.AllBalancesResponse, len(addresses)),
		Count:   len(addresses),
	}
	for _, r := range results {
		out.Results[r.address] = r.resp
		if r.cached {
			out.Cached++
		}
	}
	return out, nil
}

// ---- NAV ----

// navResult is the cached protocol NAV with its provenance
type navResult struct {
	NAV    sdk.NAV
	Source string
	Note   string
}

// protocolNAV resolves the protocol NAV through the fallback chain:
// the V2 fxUSD base pool, then the stETH treasury, then the V1 market.
func (s *GatewayService) protocolNAV(ctx context.Context) (*navResult, bool, error) {
	key := cache.Key("nav", "protocol")
	if cached, ok := s.cacheGet(key); ok {
		return cached.(*navResult), true, nil
	}

	var result *navResult

	err := s.call(ctx, "v2_pool_nav", func(client sdk.ProtocolClient) error {
		info, callErr := client.V2PoolInfo(ctx)
		if callErr != nil {
			return callErr
		}
		result = &navResult{NAV: info.NAV, Source: "v2_pool"}
		return nil
	})
	if err != nil {
		logger.GetLogger().Warn("V2 pool NAV unavailable, falling back to treasury", zap.Error(err))
		err = s.call(ctx, "treasury_nav", func(client sdk.ProtocolClient) error {
			nav, callErr := client.TreasuryNAV(ctx)
			if callErr != nil {
				return callErr
			}
			result = &navResult{NAV: *nav, Source: "treasury"}
			return nil
		})
	}
	if err != nil {
		logger.GetLogger().Warn("treasury NAV unavailable, falling back to V1 market", zap.Error(err))
		err = s.call(ctx, "v1_nav", func(client sdk.ProtocolClient) error {
			nav, callErr := client.V1NAV(ctx)
			if callErr != nil {
				return callErr
			}
			result = &navResult{
				NAV:    sdk.NAV{BaseNAV: decimal.NewFromInt(1), FNAV: nav.FNAV, XNAV: nav.XNAV},
				Source: "v1_market",
				Note:   "base NAV unavailable from the V1 market, reported as 1",
			}
			return nil
		})
	}
	if err != nil {
		return nil, false, toAppError(err)
	}

	s.cache.Set(key, result, s.cfg.Cache.NAVTTL)
	return result, false, nil
}

// navForPricing adapts protocolNAV for the price service
func (s *GatewayService) navForPricing(ctx context.Context) (*sdk.NAV, error) {
	result, _, err := s.protocolNAV(ctx)
	if err != nil {
		return nil, err
	}
	nav := result.NAV
	return &nav, nil
}

// ProtocolNAV returns the NAV triple with its source
func (s *GatewayService) ProtocolNAV(ctx context.Context) (*models.ProtocolInfoResponse, error) {
	result, _, err := s.protocolNAV(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ProtocolInfoResponse{
		BaseNAV: result.NAV.BaseNAV.String(),
		FNAV:    result.NAV.FNAV.String(),
		XNAV:    result.NAV.XNAV.String(),
		Source:  result.Source,
		Note:    result.Note,
	}, nil
}

// tokenNAV resolves a single token's NAV off the protocol NAV
func (s *GatewayService) tokenNAV(ctx context.Context, token string) (*models.TokenNavResponse, bool, error) {
	name, vErr := validation.ValidateTokenName(token)
	if vErr != nil {
		return nil, false, models.NewAppError(models.ErrUnsupportedToken, vErr.Error(), nil)
	}
	leg, ok := IsNavToken(name)
	if !ok {
		return nil, false, models.NewAppError(models.ErrUnsupportedToken,
			fmt.Sprintf("token %s has no NAV; NAV applies to fETH and x-tokens", token), nil)
	}

	result, cached, err := s.protocolNAV(ctx)
	if err != nil {
		return nil, false, err
	}

	nav := result.NAV.XNAV
	if leg == "f_nav" {
		nav = result.NAV.FNAV
	}
	return &models.TokenNavResponse{
		Token:  name,
		NAV:    nav.String(),
		Source: result.Source,
		Note:   result.Note,
	}, cached, nil
}

// TokenNAV returns the NAV of a single f/x token
func (s *GatewayService) TokenNAV(ctx context.Context, token string) (*models.TokenNavResponse, error) {
	resp, _, err := s.tokenNAV(ctx, token)
	return resp, err
}

// BatchNAV resolves NAV for multiple tokens. Unsupported tokens yield a
// nil entry rather than failing the batch.
func (s *GatewayService) BatchNAV(ctx context.Context, tokens []string) (*models.BatchNavResponse, error) {
	type navEntry struct {
		token  string
		resp   *models.TokenNavResponse
		cached bool
	}

	results := make([]navEntry, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			resp, cached, err := s.tokenNAV(ctx, token)
			if err != nil {
				logger.GetLogger().Warn("batch NAV entry failed",
					zap.String("token", token), zap.Error(err))
				results[i] = navEntry{token: token}
				return
			}
			results[i] = navEntry{token: token, resp: resp, cached: cached}
		}(i, token)
	}
	wg.Wait()

	out := &models.BatchNavResponse{
		Results: make(map[string]*models.TokenNavResponse, len(tokens)),
		Count:   len(tokens),
	}
	for _, r := range results {
		out.Results[r.token] = r.resp
		if r.cached {
			out.Cached++
		}
	}
	return out, nil
}
