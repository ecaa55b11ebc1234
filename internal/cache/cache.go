// Package cache implements the in-process keyed store shared by the
// resolution pipeline. Entries expire individually; concurrent requests
// for the same missing key are deduplicated so the expensive upstream
// work runs once per key per TTL window.
package cache

import (
	"sync"
	"time"

	"github.com/samber/mo"
)

// TTL classes. Search indices and content-type probes go stale quickly;
// resolved embed/stream tokens are comparatively stable.
const (
	ShortTTL = 24 * time.Hour
	LongTTL  = 7 * 24 * time.Hour
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// Store is a thread-safe keyed store with per-key expiry and in-flight
// request deduplication.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	flights map[string]*call[V]
	now     func() time.Time
}

// New creates an empty Store.
func New[V any]() *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		flights: make(map[string]*call[V]),
		now:     time.Now,
	}
}

// Get returns the live value for key, if any. Expired entries are treated
// as absent and dropped.
func (s *Store[V]) Get(key string) mo.Option[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return mo.None[V]()
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return mo.None[V]()
	}
	return mo.Some(e.value)
}

// Set stores value under key for the given TTL. Writes are last-write-wins.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

// Delete removes the entry for key, if present.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Memoize returns the cached value for key, or computes it via fn and
// caches the result for ttl. When multiple goroutines miss on the same key
// simultaneously, exactly one runs fn; the others wait and share its
// outcome. Errors are not cached.
func (s *Store[V]) Memoize(key string, ttl time.Duration, fn func() (V, error)) (V, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && s.now().Before(e.expiresAt) {
		s.mu.Unlock()
		return e.value, nil
	}

	if c, ok := s.flights[key]; ok {
		s.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err
	}

	c := &call[V]{}
	c.wg.Add(1)
	s.flights[key] = c
	s.mu.Unlock()

	c.val, c.err = fn()

	s.mu.Lock()
	delete(s.flights, key)
	if c.err == nil {
		s.entries[key] = entry[V]{value: c.val, expiresAt: s.now().Add(ttl)}
	}
	s.mu.Unlock()

	c.wg.Done()
	return c.val, c.err
}
