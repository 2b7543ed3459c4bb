package resolver

import (
	"hash/maphash"
	"sync"
)

const cacheShards = 32

type cacheKey struct {
	candidate  string
	generation uint64
}

type cacheShard struct {
	mu    sync.RWMutex
	rules map[cacheKey]*Rule
}

// Cache stores resolution results by candidate and theme generation.
// Rejections are cached as nil rules. It is safe for concurrent use; when
// two goroutines resolve the same candidate the last Put wins, which is
// harmless because resolution is deterministic.
type Cache struct {
	seed   maphash.Seed
	shards [cacheShards]cacheShard
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	c := &Cache{seed: maphash.MakeSeed()}
	for i := range c.shards {
		c.shards[i].rules = make(map[cacheKey]*Rule)
	}
	return c
}

func (c *Cache) shard(candidate string) *cacheShard {
	return &c.shards[maphash.String(c.seed, candidate)%cacheShards]
}

// Get returns the cached result. ok is false on a miss; a hit may still
// hold a nil rule for a rejected candidate.
func (c *Cache) Get(candidate string, generation uint64) (rule *Rule, ok bool) {
	s := c.shard(candidate)
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok = s.rules[cacheKey{candidate, generation}]
	return rule, ok
}

// Put stores a result.
func (c *Cache) Put(candidate string, generation uint64, rule *Rule) {
	s := c.shard(candidate)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[cacheKey{candidate, generation}] = rule
}

// Prune drops every entry that does not belong to generation and returns
// how many were removed.
func (c *Cache) Prune(generation uint64) int {
	removed := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for k := range s.rules {
			if k.generation != generation {
				delete(s.rules, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.rules)
		s.mu.RUnlock()
	}
	return n
}
