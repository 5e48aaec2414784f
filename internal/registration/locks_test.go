package registration

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockTable_SameKeySameMutex(t *testing.T) {
	table := newLockTable()

	a := table.get("evt-1")
	b := table.get("evt-1")
	require.NotNil(t, a)
	assert.Same(t, a, b, "repeated lookups must return the same mutex")
}

func TestLockTable_DifferentKeysDifferentMutexes(t *testing.T) {
	table := newLockTable()

	a := table.get("evt-1")
	b := table.get("evt-2")
	assert.NotSame(t, a, b)
}

func TestLockTable_ConcurrentGetIsSafe(t *testing.T) {
	table := newLockTable()

	var wg sync.WaitGroup
	results := make([]*sync.Mutex, 100)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = table.get("shared")
		}(i)
	}
	wg.Wait()

	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}

func TestLockTable_SerializesCriticalSections(t *testing.T) {
	table := newLockTable()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu := table.get("evt")
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}
