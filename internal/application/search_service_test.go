package application

import (
	"context"
	"testing"
)

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("ignores queries shorter than two characters", func(t *testing.T) {
		t.Parallel()

		svc := NewSearchService(sampleCatalog(), 5)
		for _, q := range []string{"", "   ", "s", " ö "} {
			result, err := svc.Search(context.Background(), q)
			if err != nil {
				t.Fatalf("Search(%q) failed: %v", q, err)
			}
			if len(result.Clients) != 0 || len(result.Properties) != 0 {
				t.Fatalf("expected empty result for %q, got %+v", q, result)
			}
		}
	})

	t.Run("searches clients and properties", func(t *testing.T) {
		t.Parallel()

		svc := NewSearchService(sampleCatalog(), 5)
		result, err := svc.Search(context.Background(), "SVENSSON")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if result.Query != "SVENSSON" {
			t.Fatalf("expected query echo, got %q", result.Query)
		}
		if got := ids(result.Clients, func(c Client) string { return c.ID }); !equalIDs(got, []string{"c1"}) {
			t.Fatalf("expected client c1, got %v", got)
		}
		if len(result.Properties) != 0 {
			t.Fatalf("expected no properties, got %d", len(result.Properties))
		}
	})

	t.Run("matches whitespace in the query literally", func(t *testing.T) {
		t.Parallel()

		svc := NewSearchService(sampleCatalog(), 5)
		withSpace, err := svc.Search(context.Background(), "karin ")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if got := ids(withSpace.Clients, func(c Client) string { return c.ID }); !equalIDs(got, []string{"c1"}) {
			t.Fatalf("expected client c1 for %q, got %v", "karin ", got)
		}

		trailing, err := svc.Search(context.Background(), "svensson ")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(trailing.Clients) != 0 {
			t.Fatalf("expected no client to contain %q, got %+v", "svensson ", trailing.Clients)
		}
	})

	t.Run("limits each group", func(t *testing.T) {
		t.Parallel()

		svc := NewSearchService(sampleCatalog(), 2)
		result, err := svc.Search(context.Background(), "st")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if got := ids(result.Properties, func(p Property) string { return p.ID }); !equalIDs(got, []string{"p1", "p4"}) {
			t.Fatalf("expected first two matches p1 p4, got %v", got)
		}
	})

	t.Run("serves repeated queries from cache", func(t *testing.T) {
		t.Parallel()

		svc := NewSearchService(sampleCatalog(), 5)
		first, err := svc.Search(context.Background(), "Stockholm")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if svc.cache.Len() != 1 {
			t.Fatalf("expected one cached entry, got %d", svc.cache.Len())
		}

		second, err := svc.Search(context.Background(), "stockholm")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if svc.cache.Len() != 1 {
			t.Fatalf("expected case variants to share a cache entry, got %d", svc.cache.Len())
		}
		if second.Query != "stockholm" {
			t.Fatalf("expected query echo from the caller, got %q", second.Query)
		}
		if !equalIDs(ids(first.Properties, func(p Property) string { return p.ID }), ids(second.Properties, func(p Property) string { return p.ID })) {
			t.Fatalf("expected identical results, got %+v and %+v", first.Properties, second.Properties)
		}
	})
}
