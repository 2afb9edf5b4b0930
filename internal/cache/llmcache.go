package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// LLMCache memoizes model responses for identical prompts so repeated
// requests for the same text do not reach the model again.
type LLMCache struct {
	store *Store[string]
}

// NewLLMCache returns a response cache holding at most capacity prompts for ttl.
func NewLLMCache(ttl time.Duration, capacity int) *LLMCache {
	return &LLMCache{store: NewStore[string](ttl, capacity)}
}

// KeyFrom builds a cache key from model, system instruction and user prompt.
func KeyFrom(model, system, prompt string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + system + "\n\n" + prompt))
	return hex.EncodeToString(h[:])
}

// Get returns a cached response. A nil cache always misses.
func (c *LLMCache) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.store.Get(key)
}

// Save records a response. A nil cache discards it.
func (c *LLMCache) Save(key, response string) {
	if c == nil {
		return
	}
	c.store.Put(key, response)
}

// Close stops background expiry.
func (c *LLMCache) Close() {
	if c != nil {
		c.store.Close()
	}
}
