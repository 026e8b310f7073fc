package prospect

import "sync"

// KeyedLock serializes resolve-merge-save sequences per identity key.
// The store calls are individually safe, but the read-modify-write
// spanning them is not; two pipelines resolving the same normalized
// name concurrently would otherwise lose updates.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLock creates an empty KeyedLock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: make(map[string]*keyLock)}
}

// Lock acquires the lock for key, creating it on first use.
func (l *KeyedLock) Lock(key string) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
}

// Unlock releases the lock for key, dropping it once no goroutine
// holds or awaits it.
func (l *KeyedLock) Unlock(key string) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		l.mu.Unlock()
		return
	}
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()

	kl.mu.Unlock()
}
