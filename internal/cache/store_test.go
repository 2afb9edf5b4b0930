package cache

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, ttl time.Duration, capacity int) (*Store[string], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore[string](ttl, capacity)
	s.mu.Lock()
	s.now = clock.Now
	s.mu.Unlock()
	t.Cleanup(s.Close)
	return s, clock
}

func TestStore_GetBeforeAndAfterTTL(t *testing.T) {
	s, clock := newTestStore(t, time.Hour, 10)
	s.Put("a", "alpha")
	if v, ok := s.Get("a"); !ok || v != "alpha" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}
	clock.Advance(59 * time.Minute)
	if _, ok := s.Get("a"); !ok {
		t.Fatalf("expected entry to live until its TTL")
	}
	clock.Advance(time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected entry to expire at its TTL")
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired entry to be removed on read")
	}
}

func TestStore_EvictsEarliestExpiringAtCapacity(t *testing.T) {
	s, clock := newTestStore(t, time.Hour, 2)
	s.Put("first", "1")
	clock.Advance(time.Second)
	s.Put("second", "2")
	clock.Advance(time.Second)
	s.Put("third", "3")

	if _, ok := s.Get("first"); ok {
		t.Fatalf("expected earliest-expiring entry to be evicted")
	}
	for _, k := range []string{"second", "third"} {
		if _, ok := s.Get(k); !ok {
			t.Fatalf("expected %s to remain", k)
		}
	}
	if s.Len() != 2 {
		t.Fatalf("expected capacity to hold, got %d entries", s.Len())
	}
}

func TestStore_OverwriteDoesNotEvict(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, 2)
	s.Put("a", "1")
	s.Put("b", "2")
	s.Put("a", "3")
	if v, _ := s.Get("a"); v != "3" {
		t.Fatalf("expected overwrite, got %q", v)
	}
	if _, ok := s.Get("b"); !ok {
		t.Fatalf("expected b to remain after overwrite")
	}
}

func TestStore_JanitorRemovesExpired(t *testing.T) {
	s := NewStore[int](20*time.Millisecond, 10)
	defer s.Close()
	s.Put("x", 1)
	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected janitor to collect expired entry")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	s := NewStore[int](0, 0)
	s.Close()
	s.Close()
	if s.ttl != DefaultTTL || s.capacity != DefaultCapacity {
		t.Fatalf("expected defaults, got %v %d", s.ttl, s.capacity)
	}
}

func TestNewID_IsUUID(t *testing.T) {
	id := NewID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid, got %q: %v", id, err)
	}
	if id == NewID() {
		t.Fatalf("expected unique ids")
	}
}

func TestResultStore_RoundTrip(t *testing.T) {
	r := NewResultStore(time.Minute, 5)
	defer r.Close()
	id := NewID()
	r.Save(id, json.RawMessage(`{"status":"success"}`))
	got, ok := r.Load(id)
	if !ok || string(got) != `{"status":"success"}` {
		t.Fatalf("unexpected load %s %v", got, ok)
	}
	if _, ok := r.Load("missing"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestLLMCache(t *testing.T) {
	var nilCache *LLMCache
	if _, ok := nilCache.Get("k"); ok {
		t.Fatalf("nil cache must miss")
	}
	nilCache.Save("k", "v")

	c := NewLLMCache(time.Minute, 10)
	defer c.Close()
	k1 := KeyFrom("m", "sys", "hello")
	if k1 == KeyFrom("m", "sys", "hello!") || k1 == KeyFrom("m2", "sys", "hello") {
		t.Fatalf("expected keys to depend on model and prompt")
	}
	c.Save(k1, "hola")
	if v, ok := c.Get(k1); !ok || v != "hola" {
		t.Fatalf("expected cached response, got %q %v", v, ok)
	}
}
