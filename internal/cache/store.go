// Package cache holds bounded in-memory stores with per-entry expiry.
// Nothing is written to disk; entries disappear on restart.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTTL      = 15 * time.Minute
	DefaultCapacity = 1000
)

// Store is a bounded map whose entries expire after a fixed TTL. When full,
// adding a new key evicts the entry closest to expiry. A janitor goroutine
// drops expired entries until Close is called.
type Store[V any] struct {
	mu       sync.Mutex
	data     map[string]entry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewStore creates a store. Non-positive ttl or capacity select the defaults.
func NewStore[V any](ttl time.Duration, capacity int) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store[V]{
		data:     make(map[string]entry[V]),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go s.janitor(janitorInterval(ttl))
	return s
}

func janitorInterval(ttl time.Duration) time.Duration {
	iv := ttl / 2
	if iv > time.Minute {
		iv = time.Minute
	}
	if iv < 10*time.Millisecond {
		iv = 10 * time.Millisecond
	}
	return iv
}

// NewID returns a random identifier suitable as a store key.
func NewID() string {
	return uuid.NewString()
}

// Put stores v under key, replacing any previous value.
func (s *Store[V]) Put(key string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if _, exists := s.data[key]; !exists && len(s.data) >= s.capacity {
		s.removeExpiredLocked(now)
		if len(s.data) >= s.capacity {
			s.evictEarliestLocked()
		}
	}
	s.data[key] = entry[V]{value: v, expiresAt: now.Add(s.ttl)}
}

// Get returns the value under key if it has not expired.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.data, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Len reports the number of stored entries, including expired ones the
// janitor has not collected yet.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Close stops the janitor. The store stays readable.
func (s *Store[V]) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

func (s *Store[V]) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.mu.Lock()
			s.removeExpiredLocked(s.now())
			s.mu.Unlock()
		}
	}
}

func (s *Store[V]) removeExpiredLocked(now time.Time) {
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
		}
	}
}

func (s *Store[V]) evictEarliestLocked() {
	var victim string
	var earliest time.Time
	first := true
	for k, e := range s.data {
		if first || e.expiresAt.Before(earliest) {
			victim, earliest, first = k, e.expiresAt, false
		}
	}
	if !first {
		delete(s.data, victim)
	}
}
