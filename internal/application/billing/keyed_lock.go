package billing

import (
	"fmt"
	"sync"
)

// keyedLock serializa las operaciones sobre una misma clave (sector, período)
// sin bloquear claves distintas. Las entradas se liberan cuando nadie las usa.
type keyedLock struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[string]*keyedEntry)}
}

// Lock toma el lock de key y devuelve la función que lo libera.
func (k *keyedLock) Lock(key string) func() {
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

func approvalKey(sectorID int64, month, year int) string {
	return fmt.Sprintf("%d:%d:%d", sectorID, year, month)
}
