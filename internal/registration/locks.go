package registration

import "sync"

// lockTable hands out one mutex per event ID, created on demand. Locks are
// retained for the life of the process; the per-event footprint is a single
// mutex, so there is no eviction.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}
