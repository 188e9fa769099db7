package services

import (
	"strings"
	"sync"
	"time"

	"github.com/chrisstampar/fx-api/internal/sdk"
)

// TrackedTransaction is an in-memory record of a broadcast transaction
type TrackedTransaction struct {
	Hash          string
	Status        string
	From          string
	To            string
	BlockNumber   *int64
	Confirmations *int64
	GasUsed       *int64
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionTracker keeps transactions broadcast through this API in
// memory so status lookups can answer before the chain has a receipt.
// Records are keyed by lowercase hash.
type TransactionTracker struct {
	mu           sync.RWMutex
	transactions map[string]*TrackedTransaction
}

func NewTransactionTracker() *TransactionTracker {
	return &TransactionTracker{
		transactions: make(map[string]*TrackedTransaction),
	}
}

// Track records a freshly broadcast transaction as pending. Tracking
// the same hash again overwrites the previous record.
func (t *TransactionTracker) Track(hash, from, to string) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactions[strings.ToLower(hash)] = &TrackedTransaction{
		Hash:      hash,
		Status:    sdk.StatusPending,
		From:      from,
		To:        to,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Get returns a copy of the tracked record, or nil when the hash is unknown
func (t *TransactionTracker) Get(hash string) *TrackedTransaction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tx, ok := t.transactions[strings.ToLower(hash)]
	if !ok {
		return nil
	}
	cp := *tx
	return &cp
}

// Update applies a status change to a tracked transaction. Nil fields
// leave the stored values untouched. Unknown hashes are ignored.
func (t *TransactionTracker) Update(hash, status string, blockNumber, confirmations, gasUsed *int64, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tx, ok := t.transactions[strings.ToLower(hash)]
	if !ok {
		return
	}
	tx.Status = status
	if blockNumber != nil {
		tx.BlockNumber = blockNumber
	}
	if confirmations != nil {
		tx.Confirmations = confirmations
	}
	if gasUsed != nil {
		tx.GasUsed = gasUsed
	}
	if errMsg != "" {
		tx.Error = errMsg
	}
	tx.UpdatedAt = time.Now()
}

// Cleanup removes records older than maxAge and returns how many were dropped
func (t *TransactionTracker) Cleanup(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for hash, tx := range t.transactions {
		if tx.CreatedAt.Before(cutoff) {
			delete(t.transactions, hash)
			removed++
		}
	}
	return removed
}

// Stats summarizes the tracker for the metrics endpoint
func (t *TransactionTracker) Stats() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts := make(map[string]int)
	for _, tx := range t.transactions {
		counts[tx.Status]++
	}
	return map[string]interface{}{
		"total_tracked": len(t.transactions),
		"status_counts": counts,
	}
}
