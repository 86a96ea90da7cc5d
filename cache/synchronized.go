package cache

import "sync"

// Synchronized decorates a raw strategy with the concurrency discipline
// required of any cache consumer: for a given key at most one
// computation of its value proceeds at a time, while distinct keys never
// block each other.
//
// Consumers receive this type from the injector and never see the raw
// strategy, so no component needs to know synchronization was added.
type Synchronized struct {
	decorated Strategy

	mu    sync.Mutex
	locks map[Key]*sync.Mutex
}

// NewSynchronized wraps a raw strategy. It fails fast on nil.
func NewSynchronized(decorated Strategy) (*Synchronized, error) {
	if decorated == nil {
		return nil, ErrNilStrategy
	}
	return &Synchronized{decorated: decorated, locks: make(map[Key]*sync.Mutex)}, nil
}

// GetOrCompute returns the cached entry for k, computing and storing it
// if absent.
//
// Concurrent callers for the same key serialize on a per-key lock and
// re-check the cache after acquiring it, so the expensive computation
// runs at most once per generation; every caller observes its result.
func (s *Synchronized) GetOrCompute(k Key, compute func() (Entry, error)) (Entry, error) {
	if e, ok, err := s.decorated.Get(k); err == nil && ok {
		return e, nil
	}

	lock := s.keyLock(k)
	lock.Lock()
	defer lock.Unlock()

	e, ok, err := s.decorated.Get(k)
	if err != nil {
		return Entry{}, err
	}
	if ok {
		return e, nil
	}
	e, err = compute()
	if err != nil {
		return Entry{}, err
	}
	if err := s.decorated.Put(k, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Get implements Strategy.
func (s *Synchronized) Get(k Key) (Entry, bool, error) {
	lock := s.keyLock(k)
	lock.Lock()
	defer lock.Unlock()
	return s.decorated.Get(k)
}

// Put implements Strategy.
func (s *Synchronized) Put(k Key, e Entry) error {
	lock := s.keyLock(k)
	lock.Lock()
	defer lock.Unlock()
	return s.decorated.Put(k, e)
}

// Contains implements Strategy.
func (s *Synchronized) Contains(k Key) (bool, error) {
	lock := s.keyLock(k)
	lock.Lock()
	defer lock.Unlock()
	return s.decorated.Contains(k)
}

// Clear implements Strategy. The per-key locks are dropped together
// with the entries; the key space is caller-controlled, so the lock map
// must not grow with every key ever seen.
func (s *Synchronized) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks = make(map[Key]*sync.Mutex)
	return s.decorated.Clear()
}

func (s *Synchronized) keyLock(k Key) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[k]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[k] = lock
	}
	return lock
}
