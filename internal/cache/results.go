package cache

import (
	"encoding/json"
	"time"
)

// ResultStore keeps rendered response envelopes so clients can fetch a
// processed result again by id until it expires.
type ResultStore struct {
	store *Store[json.RawMessage]
}

// NewResultStore creates a result store; see NewStore for the defaults.
func NewResultStore(ttl time.Duration, capacity int) *ResultStore {
	return &ResultStore{store: NewStore[json.RawMessage](ttl, capacity)}
}

// Save stores an envelope under id.
func (r *ResultStore) Save(id string, envelope json.RawMessage) {
	r.store.Put(id, envelope)
}

// Load returns the envelope stored under id.
func (r *ResultStore) Load(id string) (json.RawMessage, bool) {
	return r.store.Get(id)
}

// Close stops background expiry.
func (r *ResultStore) Close() {
	r.store.Close()
}
