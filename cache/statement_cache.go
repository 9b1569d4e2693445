package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is used when NewStatementCache is given a non-positive size.
const DefaultSize = 1024

// CachedStatement is a rendered statement kept for reuse. Holders must not
// modify Args.
type CachedStatement struct {
	SQL  string
	Args []any
}

// StatementCache is a fixed-size LRU of rendered statements. It is safe for
// concurrent use.
type StatementCache[K comparable] struct {
	cache *lru.Cache[K, *CachedStatement]
}

func NewStatementCache[K comparable](size int) *StatementCache[K] {
	if size <= 0 {
		size = DefaultSize
	}
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[K, *CachedStatement](size)
	return &StatementCache[K]{cache: c}
}

func (s *StatementCache[K]) Get(key K) (*CachedStatement, bool) {
	return s.cache.Get(key)
}

func (s *StatementCache[K]) Add(key K, stmt *CachedStatement) {
	s.cache.Add(key, stmt)
}

// Len returns the number of cached statements.
func (s *StatementCache[K]) Len() int {
	return s.cache.Len()
}

// Purge drops every entry.
func (s *StatementCache[K]) Purge() {
	s.cache.Purge()
}
