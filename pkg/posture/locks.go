package posture

import "sync"

// KeyedMutex hands out one mutex per key: user_id -> mutex. The zero value
// is ready to use. It is what serializes the cooldown-check-then-insert
// sequence so overlapping batch runs cannot double-send to one user.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *KeyedMutex) Get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}

	lock, exists := k.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}
