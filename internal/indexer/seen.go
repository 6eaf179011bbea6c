package indexer

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// seenCache remembers paths already written during this process lifetime so
// a repeating full scan does not re-issue redundant upserts. It is a
// best-effort visited-path cache, not a correctness guarantee: upserts are
// idempotent, so eviction or a cold cache only costs extra writes.
//
// The cache is bounded by the configured max-files soft cap via LRU
// eviction, keeping memory flat on large trees.
type seenCache struct {
	cache *lru.Cache[string, struct{}]
}

func newSeenCache(capacity int) (*seenCache, error) {
	if capacity <= 0 {
		capacity = 100_000
	}
	cache, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create seen-path cache: %w", err)
	}
	return &seenCache{cache: cache}, nil
}

// Add records a path as written.
func (s *seenCache) Add(path string) {
	s.cache.Add(path, struct{}{})
}

// Contains reports whether a path was already written.
func (s *seenCache) Contains(path string) bool {
	return s.cache.Contains(path)
}

// Remove forgets a path, e.g. after its row was deleted.
func (s *seenCache) Remove(path string) {
	s.cache.Remove(path)
}

// Len returns the number of remembered paths.
func (s *seenCache) Len() int {
	return s.cache.Len()
}
