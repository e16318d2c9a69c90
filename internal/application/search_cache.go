package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// searchCache stores recently computed global search results so repeated
// keystrokes for the same prefix do not rescan the catalog. The catalog is
// immutable, so entries only age out through the TTL or the size bound.
type searchCache struct {
	entries *expirable.LRU[string, GlobalSearchResult]
}

func newSearchCache(ttl time.Duration, maxEntries int) *searchCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &searchCache{entries: expirable.NewLRU[string, GlobalSearchResult](maxEntries, nil, ttl)}
}

func (c *searchCache) Get(key string) (GlobalSearchResult, bool) {
	if c == nil {
		return GlobalSearchResult{}, false
	}
	result, ok := c.entries.Get(key)
	if !ok {
		return GlobalSearchResult{}, false
	}
	return cloneSearchResult(result), true
}

func (c *searchCache) Store(key string, result GlobalSearchResult) {
	if c == nil {
		return
	}
	c.entries.Add(key, cloneSearchResult(result))
}

func (c *searchCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func cloneSearchResult(result GlobalSearchResult) GlobalSearchResult {
	clients := make([]Client, len(result.Clients))
	copy(clients, result.Clients)
	return GlobalSearchResult{
		Query:      result.Query,
		Clients:    clients,
		Properties: cloneProperties(result.Properties),
	}
}

func buildSearchCacheKey(normalizedQuery string, limit int) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%d", limit))
	builder.WriteString("|")
	builder.WriteString(normalizedQuery)
	return builder.String()
}
