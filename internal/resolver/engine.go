package resolver

import (
	"sync/atomic"

	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
)

// Engine resolves candidates against whatever design a Store currently
// publishes, sharing one cache across builds.
type Engine struct {
	store *design.Store
	cache *Cache
	// pruned is the last generation the cache was pruned for.
	pruned atomic.Uint64
}

// NewEngine returns an engine reading store.
func NewEngine(store *design.Store) *Engine {
	if store == nil {
		panic("resolver: NewEngine called with nil store")
	}
	return &Engine{store: store, cache: NewCache()}
}

// Cache returns the engine's resolution cache.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// Session pins the current snapshot. A build resolves all of its
// candidates through one session, so a concurrent Store.Swap never mixes
// two themes in one stylesheet.
func (e *Engine) Session() *Session {
	snap := e.store.Load()
	if last := e.pruned.Load(); snap.Generation > last && e.pruned.CompareAndSwap(last, snap.Generation) {
		if n := e.cache.Prune(snap.Generation); n > 0 {
			log.Debug("Pruned %d cached rules from older themes", n)
		}
	}
	return &Session{
		resolver:   New(snap.Design),
		generation: snap.Generation,
		cache:      e.cache,
	}
}

// Session resolves candidates against one snapshot.
type Session struct {
	resolver   *Resolver
	generation uint64
	cache      *Cache
}

// Generation returns the theme generation the session reads.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Design returns the design the session reads.
func (s *Session) Design() *design.Design {
	return s.resolver.Design()
}

// Resolve resolves raw, consulting the cache first.
func (s *Session) Resolve(raw string) *Rule {
	if rule, ok := s.cache.Get(raw, s.generation); ok {
		return rule
	}
	rule := s.resolver.Resolve(raw)
	if rule == nil {
		log.Debug("Rejected candidate %q", raw)
	}
	s.cache.Put(raw, s.generation, rule)
	return rule
}
