package application

import (
	"testing"
	"time"
)

func TestSearchCacheStoresAndReturnsCopies(t *testing.T) {
	cache := newSearchCache(time.Minute, 4)

	original := GlobalSearchResult{
		Query:      "eriksson",
		Clients:    []Client{{ID: "client-1", LastName: "Eriksson"}},
		Properties: []Property{{ID: "property-1", Images: []string{"a.jpg"}}},
	}
	cache.Store("key", original)

	// Mutating the original result should not affect the cached copy.
	original.Clients[0].ID = "mutated"
	original.Properties[0].Images[0] = "mutated.jpg"

	cached, ok := cache.Get("key")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if cached.Clients[0].ID != "client-1" {
		t.Fatalf("expected cached client id to remain unchanged, got %s", cached.Clients[0].ID)
	}
	if cached.Properties[0].Images[0] != "a.jpg" {
		t.Fatalf("expected cached images to remain unchanged, got %s", cached.Properties[0].Images[0])
	}

	// Mutating the returned result should not be visible on subsequent reads.
	cached.Clients[0].ID = "changed"
	cachedAgain, ok := cache.Get("key")
	if !ok {
		t.Fatalf("expected cache hit on second read")
	}
	if cachedAgain.Clients[0].ID != "client-1" {
		t.Fatalf("expected cache to return independent copy, got %s", cachedAgain.Clients[0].ID)
	}
}

func TestSearchCacheBoundsEntries(t *testing.T) {
	cache := newSearchCache(time.Minute, 2)
	cache.Store("a", GlobalSearchResult{Query: "a"})
	cache.Store("b", GlobalSearchResult{Query: "b"})
	cache.Store("c", GlobalSearchResult{Query: "c"})

	if got := cache.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	if _, ok := cache.Get("a"); ok {
		t.Fatalf("expected least recently used entry to be evicted")
	}
}

func TestSearchCacheNil(t *testing.T) {
	var nilCache *searchCache
	nilCache.Store("key", GlobalSearchResult{})
	if _, ok := nilCache.Get("key"); ok {
		t.Fatalf("expected nil cache to miss")
	}
}

func TestBuildSearchCacheKey(t *testing.T) {
	if buildSearchCacheKey("villa", 5) == buildSearchCacheKey("villa", 10) {
		t.Fatalf("expected limit to be part of the key")
	}
}
