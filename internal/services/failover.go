package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/chrisstampar/fx-api/internal/sdk"
	"github.com/chrisstampar/fx-api/pkg/logger"
	"github.com/chrisstampar/fx-api/pkg/metrics"
)

// ClientFactory dials a ProtocolClient for an endpoint URL
type ClientFactory func(ctx context.Context, url string) (sdk.ProtocolClient, error)

// EndpointsExhaustedError is returned when every configured endpoint
// failed for a call
type EndpointsExhaustedError struct {
	Attempted []string
	LastErr   error
}

func (e *EndpointsExhaustedError) Error() string {
	return fmt.Sprintf("all %d RPC endpoints failed. Attempted: %s. Last error: %v",
		len(e.Attempted), strings.Join(e.Attempted, ", "), e.LastErr)
}

func (e *EndpointsExhaustedError) Unwrap() error { return e.LastErr }

// FailoverClient runs calls against an ordered list of RPC endpoints.
// The active endpoint is sticky: once a fallback succeeds it stays active
// until it fails. Clients are dialed lazily, cached per endpoint and
// shared across goroutines; only the active index is guarded.
type FailoverClient struct {
	endpoints []string
	factory   ClientFactory
	collector *metrics.Collector

	mu      sync.Mutex
	clients map[int]sdk.ProtocolClient
	index   int
}

// NewFailoverClient creates a failover client over the given endpoints.
// No connection is made until the first call.
func NewFailoverClient(endpoints []string, factory ClientFactory, collector *metrics.Collector) (*FailoverClient, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("at least one RPC endpoint is required")
	}
	return &FailoverClient{
		endpoints: endpoints,
		factory:   factory,
		collector: collector,
		clients:   make(map[int]sdk.ProtocolClient),
	}, nil
}

// Endpoints returns the configured endpoint URLs in order
func (f *FailoverClient) Endpoints() []string {
	out := make([]string, len(f.endpoints))
	copy(out, f.endpoints)
	return out
}

// ActiveEndpoint returns the URL of the currently active endpoint
func (f *FailoverClient) ActiveEndpoint() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.endpoints[f.index]
}

// Call runs fn against the active client. On failure it advances through
// the remaining endpoints in configured order, re-dialing as needed, and
// returns EndpointsExhaustedError once every endpoint failed. A success
// on a fallback makes that endpoint the new active one (last write wins
// under concurrency).
func (f *FailoverClient) Call(ctx context.Context, label string, fn func(client sdk.ProtocolClient) error) error {
	log := logger.GetLogger()
	attempted := make([]string, 0, len(f.endpoints))
	var lastErr error

	f.mu.Lock()
	start := f.index
	f.mu.Unlock()

	for i := 0; i < len(f.endpoints); i++ {
		idx := (start + i) % len(f.endpoints)
		url := f.endpoints[idx]

		client, err := f.clientFor(ctx, idx)
		if err != nil {
			lastErr = err
			attempted = append(attempted, url)
			log.Warn("failed to dial RPC endpoint",
				zap.String("operation", label),
				zap.String("endpoint", url),
				zap.Error(err))
			continue
		}

		if err := fn(client); err != nil {
			lastErr = err
			attempted = append(attempted, url)
			log.Warn("RPC call failed, trying next endpoint",
				zap.String("operation", label),
				zap.String("endpoint", url),
				zap.Error(err))
			continue
		}

		f.mu.Lock()
		if f.index != idx {
			f.index = idx
			if f.collector != nil {
				f.collector.RecordFailoverSwitch()
			}
			log.Info("switched active RPC endpoint",
				zap.String("operation", label),
				zap.String("endpoint", url))
		}
		f.mu.Unlock()
		return nil
	}

	return &EndpointsExhaustedError{Attempted: attempted, LastErr: lastErr}
}

// ProbeAll checks every endpoint and reports per-endpoint reachability.
// Used by the detailed health check.
func (f *FailoverClient) ProbeAll(ctx context.Context) map[string]bool {
	status := make(map[string]bool, len(f.endpoints))
	for idx, url := range f.endpoints {
		client, err := f.clientFor(ctx, idx)
		if err != nil {
			status[url] = false
			continue
		}
		status[url] = client.Connected(ctx)
	}
	return status
}

// Connected reports whether any endpoint responds
func (f *FailoverClient) Connected(ctx context.Context) bool {
	err := f.Call(ctx, "probe", func(client sdk.ProtocolClient) error {
		if !client.Connected(ctx) {
			return fmt.Errorf("endpoint not responding")
		}
		return nil
	})
	return err == nil
}

// Close releases every dialed client
func (f *FailoverClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx, client := range f.clients {
		client.Close()
		delete(f.clients, idx)
	}
}

// clientFor returns the cached client for an endpoint, dialing on first use
func (f *FailoverClient) clientFor(ctx context.Context, idx int) (sdk.ProtocolClient, error) {
	f.mu.Lock()
	if client, ok := f.clients[idx]; ok {
		f.mu.Unlock()
		return client, nil
	}
	f.mu.Unlock()

	client, err := f.factory(ctx, f.endpoints[idx])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.clients[idx]; ok {
		// Lost the dial race; keep the existing client.
		client.Close()
		return existing, nil
	}
	f.clients[idx] = client
	return client, nil
}
