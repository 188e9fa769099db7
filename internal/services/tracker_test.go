package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisstampar/fx-api/internal/sdk"
)

func TestTrackerTrackAndGet(t *testing.T) {
	tracker := NewTransactionTracker()
	tracker.Track("0xABCDEF", "0xfrom", "0xto")

	tx := tracker.Get("0xabcdef")
	require.NotNil(t, tx)
	assert.Equal(t, sdk.StatusPending, tx.Status)
	assert.Equal(t, "0xfrom", tx.From)
	assert.Equal(t, "0xto", tx.To)

	assert.Nil(t, tracker.Get("0xdeadbeef"))
}

func TestTrackerUpdate(t *testing.T) {
	tracker := NewTransactionTracker()
	tracker.Track("0xabc", "0xfrom", "0xto")

	block := int64(19000000)
	confs := int64(3)
	gas := int64(21000)
	tracker.Update("0xABC", sdk.StatusConfirmed, &block, &confs, &gas, "")

	tx := tracker.Get("0xabc")
	require.NotNil(t, tx)
	assert.Equal(t, sdk.StatusConfirmed, tx.Status)
	require.NotNil(t, tx.BlockNumber)
	assert.Equal(t, block, *tx.BlockNumber)
	require.NotNil(t, tx.Confirmations)
	assert.Equal(t, confs, *tx.Confirmations)
	require.NotNil(t, tx.GasUsed)
	assert.Equal(t, gas, *tx.GasUsed)

	// Partial update keeps existing fields.
	tracker.Update("0xabc", sdk.StatusFailed, nil, nil, nil, "reverted")
	tx = tracker.Get("0xabc")
	assert.Equal(t, sdk.StatusFailed, tx.Status)
	assert.Equal(t, block, *tx.BlockNumber)
	assert.Equal(t, "reverted", tx.Error)

	// Updating an unknown hash is a no-op.
	tracker.Update("0xmissing", sdk.StatusConfirmed, nil, nil, nil, "")
	assert.Nil(t, tracker.Get("0xmissing"))
}

func TestTrackerGetReturnsCopy(t *testing.T) {
	tracker := NewTransactionTracker()
	tracker.Track("0xabc", "0xfrom", "0xto")

	tx := tracker.Get("0xabc")
	tx.Status = sdk.StatusFailed

	assert.Equal(t, sdk.StatusPending, tracker.Get("0xabc").Status)
}

func TestTrackerCleanup(t *testing.T) {
	tracker := NewTransactionTracker()
	tracker.Track("0xold", "0xfrom", "0xto")
	tracker.transactions["0xold"].CreatedAt = time.Now().Add(-25 * time.Hour)
	tracker.Track("0xnew", "0xfrom", "0xto")

	removed := tracker.Cleanup(24 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.Nil(t, tracker.Get("0xold"))
	assert.NotNil(t, tracker.Get("0xnew"))
}

func TestTrackerStats(t *testing.T) {
	tracker := NewTransactionTracker()
	tracker.Track("0xa", "0xfrom", "0xto")
	tracker.Track("0xb", "0xfrom", "0xto")
	tracker.Update("0xb", sdk.StatusConfirmed, nil, nil, nil, "")

	stats := tracker.Stats()
	assert.Equal(t, 2, stats["total_tracked"])
	counts := stats["status_counts"].(map[string]int)
	assert.Equal(t, 1, counts[sdk.StatusPending])
	assert.Equal(t, 1, counts[sdk.StatusConfirmed])
}
