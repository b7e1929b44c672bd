// CLAUDE:SUMMARY Bounded LRU query-result cache with TTL, keyed by operation, index generation and normalized query.
// Package cache holds expansion and suggestion results outside the alias
// index. The index stays immutable; this is the only mutable shared state
// on the query path.
package cache

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hazyhaar/autolex/pkg/lexicon"
)

const (
	DefaultSize = 4096
	DefaultTTL  = 5 * time.Minute
)

// Entry is one cached query result. Only the fields relevant to the
// operation are set.
type Entry struct {
	Normalized  string
	Aliases     []string
	Suggestions []lexicon.Suggestion
}

// QueryCache is safe for concurrent use.
type QueryCache struct {
	lru    *expirable.LRU[string, Entry]
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache usage since creation.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// NewQueryCache creates a cache holding at most size entries, each living
// for ttl. Non-positive values fall back to the defaults.
func NewQueryCache(size int, ttl time.Duration) *QueryCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QueryCache{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

// Key builds a cache key. The generation makes entries from a previous
// index unreachable after a reload.
func Key(op string, generation uint64, normalized string, params ...string) string {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(generation, 10))
	b.WriteByte('|')
	b.WriteString(normalized)
	for _, p := range params {
		b.WriteByte('|')
		b.WriteString(p)
	}
	return b.String()
}

// Get returns the entry stored under key, if present and not expired.
func (c *QueryCache) Get(key string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return e, ok
}

// Put stores e under key, evicting the least recently used entry when full.
func (c *QueryCache) Put(key string, e Entry) {
	if c == nil {
		return
	}
	c.lru.Add(key, e)
}

// Purge drops every entry.
func (c *QueryCache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *QueryCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

func (c *QueryCache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{Entries: c.lru.Len(), Hits: c.hits.Load(), Misses: c.misses.Load()}
}
