package services

import "sync"

// keyedMutex hands out one mutex per project ID. Mutexes are never
// reclaimed; the set of concurrently active projects is small enough
// that this does not matter.
type keyedMutex struct {
	locks sync.Map // uint -> *sync.Mutex
}

func (k *keyedMutex) Lock(id uint) (unlock func()) {
	v, _ := k.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
