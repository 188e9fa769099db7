package mutex

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("0xabc")
			defer km.Unlock("0xabc")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key should not block")
	}
}

func TestKeyedMutexCleanup(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("stale")
	km.Unlock("stale")
	assert.Equal(t, 1, km.Size())

	time.Sleep(20 * time.Millisecond)

	removed := km.Cleanup(10 * time.Millisecond)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, km.Size())
}

func TestKeyedMutexCleanupSkipsHeld(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("held")
	defer km.Unlock("held")

	time.Sleep(20 * time.Millisecond)

	removed := km.Cleanup(10 * time.Millisecond)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, km.Size())
}
