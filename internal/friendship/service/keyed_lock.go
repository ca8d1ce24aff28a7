package service

import (
	"sync"

	id "rankbridge/pkg/domain"
)

// keyedLock serializes work per global id. Entries are dropped once no
// goroutine holds or waits for them.
type keyedLock struct {
	mu    sync.Mutex
	locks map[id.GlobalID]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[id.GlobalID]*keyedEntry)}
}

func (k *keyedLock) lock(key id.GlobalID) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
