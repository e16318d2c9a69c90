package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/example/realestate-crm/internal/query"
)

const (
	// MinGlobalSearchLength is the shortest trimmed query the header search answers.
	MinGlobalSearchLength    = 2
	defaultGlobalSearchLimit = 5
)

// SearchService answers the header search dropdown across clients and properties.
type SearchService struct {
	catalog *Catalog
	limit   int
	cache   *searchCache
	logger  *slog.Logger
}

// NewSearchService constructs a search service returning at most limit rows per group.
func NewSearchService(catalog *Catalog, limit int) *SearchService {
	return NewSearchServiceWithLogger(catalog, limit, nil)
}

// NewSearchServiceWithLogger constructs a search service with a specified logger.
func NewSearchServiceWithLogger(catalog *Catalog, limit int, logger *slog.Logger) *SearchService {
	if limit <= 0 {
		limit = defaultGlobalSearchLimit
	}
	return &SearchService{
		catalog: catalog,
		limit:   limit,
		cache:   newSearchCache(0, 0),
		logger:  defaultLogger(logger),
	}
}

func (s *SearchService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SearchService", operation, attrs...)
}

// Search returns the first matching clients and properties. Queries shorter
// than MinGlobalSearchLength after trimming return an empty result.
func (s *SearchService) Search(ctx context.Context, q string) (result GlobalSearchResult, err error) {
	if s == nil {
		err = fmt.Errorf("SearchService is nil")
		return
	}

	result = GlobalSearchResult{Query: q, Clients: []Client{}, Properties: []Property{}}

	logger := s.loggerWith(ctx, "Search", "query", q)
	cacheHit := false
	defer func() {
		logger.With(
			"client_count", len(result.Clients),
			"property_count", len(result.Properties),
			"cache_hit", cacheHit,
		).InfoContext(ctx, "global search completed")
	}()

	if utf8.RuneCountInString(strings.TrimSpace(q)) < MinGlobalSearchLength {
		return
	}

	key := buildSearchCacheKey(strings.ToLower(q), s.limit)
	if cached, ok := s.cache.Get(key); ok {
		cacheHit = true
		cached.Query = q
		result = cached
		return
	}

	clients := query.Search(s.catalog.Clients(), q, clientSearchFields)
	properties := query.Search(s.catalog.Properties(), q, propertySearchFields)

	result.Clients = query.Limit(clients, s.limit)
	result.Properties = query.Limit(properties, s.limit)
	s.cache.Store(key, result)
	return
}
