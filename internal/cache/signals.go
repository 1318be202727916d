package cache

import (
	"encoding/json"
	"time"

	"github.com/ppiankov/claimguard/internal/model"
)

// SignalStore persists URL signals through a byte cache so repeated
// analyses of the same evidence do not re-fetch it. Failed probes are
// cached too; the TTL bounds how long a bad result sticks.
type SignalStore struct {
	cache Cache
	ttl   time.Duration
}

// NewSignalStore wraps a cache with URL signal encoding
func NewSignalStore(c Cache, ttl time.Duration) *SignalStore {
	return &SignalStore{cache: c, ttl: ttl}
}

// Get returns the cached signal for a URL, if present and decodable
func (s *SignalStore) Get(url string) (model.URLSignal, bool) {
	data, ok := s.cache.Get(CacheKey(url))
	if !ok {
		return model.URLSignal{}, false
	}

	var sig model.URLSignal
	if err := json.Unmarshal(data, &sig); err != nil {
		return model.URLSignal{}, false
	}
	return sig, true
}

// Set stores the signal for a URL. Encoding failures drop the entry
// rather than surfacing an error; the cache is an optimization only.
func (s *SignalStore) Set(url string, sig model.URLSignal) {
	data, err := json.Marshal(sig)
	if err != nil {
		return
	}
	_ = s.cache.Set(CacheKey(url), data, s.ttl)
}
