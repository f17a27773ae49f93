package services

import "sync"

// accountLocker hands out one mutex per account ID so that debit operations
// against the same account are serialized while different accounts proceed
// independently. Locks are never released from the map; the set of active
// accounts in one process is small enough that this is not a concern.
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocker() *accountLocker {
	return &accountLocker{locks: make(map[string]*sync.Mutex)}
}

// lockFor returns the mutex guarding the given account, creating it on first use.
func (l *accountLocker) lockFor(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	return m
}
