package application

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/realestate-crm/internal/query"
)

// PropertyService answers the property list and property detail views.
type PropertyService struct {
	catalog    *Catalog
	fetchDelay time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewPropertyService constructs a property service over catalog.
func NewPropertyService(catalog *Catalog, fetchDelay time.Duration, now func() time.Time) *PropertyService {
	return NewPropertyServiceWithLogger(catalog, fetchDelay, now, nil)
}

// NewPropertyServiceWithLogger constructs a property service with a specified logger.
// fetchDelay is the simulated latency applied before a detail lookup resolves.
func NewPropertyServiceWithLogger(catalog *Catalog, fetchDelay time.Duration, now func() time.Time, logger *slog.Logger) *PropertyService {
	if now == nil {
		now = time.Now
	}
	if fetchDelay < 0 {
		fetchDelay = 0
	}
	return &PropertyService{catalog: catalog, fetchDelay: fetchDelay, now: now, logger: defaultLogger(logger)}
}

func (s *PropertyService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PropertyService", operation, attrs...)
}

// ListProperties searches address, city, type and description, filters by
// status and applies the requested ordering.
func (s *PropertyService) ListProperties(ctx context.Context, params PropertyListParams) (properties []Property, err error) {
	if s == nil {
		err = fmt.Errorf("PropertyService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListProperties",
		"query", params.Query,
		"status", params.Status,
		"sort", string(params.Sort),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list properties", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(properties)).InfoContext(ctx, "properties listed")
	}()

	vErr := &ValidationError{}
	if !validPropertyStatusCategory(params.Status) {
		vErr.add("status", "status is invalid")
	}
	comparator, ok := propertyComparator(params.Sort)
	if !ok {
		vErr.add("sort", "sort is invalid")
	}
	if err = vErr.orNil(); err != nil {
		return
	}

	properties = query.Search(s.catalog.Properties(), params.Query, propertySearchFields)
	properties = query.FilterCategory(properties, PropertyStatus(params.Status), func(p Property) PropertyStatus { return p.Status })
	if comparator != nil {
		properties = query.SortStable(properties, comparator)
	}
	return
}

// GetProperty resolves the property detail after the configured fetch delay.
// The wait is abandoned with ctx.Err() when the context ends first.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (detail PropertyDetail, err error) {
	if s == nil {
		err = fmt.Errorf("PropertyService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetProperty", "property_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get property", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "property resolved")
	}()

	if err = s.wait(ctx); err != nil {
		return
	}

	property, ok := query.FindByID(s.catalog.Properties(), id, propertyID)
	if !ok {
		err = ErrNotFound
		return
	}

	detail = PropertyDetail{Property: property}
	if agent, ok := query.FindByID(s.catalog.Users(), property.AgentID, userID); ok {
		detail.Agent = &agent
	}
	clients := s.catalog.Clients()
	if owner, ok := query.FindByID(clients, property.OwnerID, clientID); ok {
		detail.Owner = &owner
	}
	if buyer, ok := query.FindByOptionalID(clients, property.BuyerID, clientID); ok {
		detail.Buyer = &buyer
	}

	detail.Offers = query.SortStable(
		query.ManyBy(s.catalog.Offers(), property.ID, func(o Offer) string { return o.PropertyID }),
		offersNewestFirst,
	)

	activities := query.ManyByOptional(s.catalog.Activities(), property.ID, activityProperty)
	detail.Activities = query.SortStable(activities, activitiesNewestFirst)

	now := s.now()
	detail.UpcomingViewings = query.SortStable(query.Where(activities, func(a Activity) bool {
		return a.Type == ActivityTypeViewing && a.Date.After(now)
	}), activitiesSoonestFirst)
	return
}

func (s *PropertyService) wait(ctx context.Context) error {
	if s.fetchDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.fetchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func propertySearchFields(p Property) []string {
	return []string{p.Address, p.City, string(p.Type), p.Description}
}

func validPropertyStatusCategory(value string) bool {
	switch value {
	case "", query.AllCategories, string(PropertyStatusAvailable), string(PropertyStatusPending), string(PropertyStatusSold):
		return true
	}
	return false
}

func propertyComparator(sort PropertySort) (func(a, b Property) int, bool) {
	switch sort {
	case PropertySortNone:
		return nil, true
	case PropertySortNewest:
		return func(a, b Property) int { return b.ListedAt.Compare(a.ListedAt) }, true
	case PropertySortPriceAsc:
		return func(a, b Property) int { return cmp.Compare(a.Price, b.Price) }, true
	case PropertySortPriceDesc:
		return func(a, b Property) int { return cmp.Compare(b.Price, a.Price) }, true
	case PropertySortSizeDesc:
		return func(a, b Property) int { return cmp.Compare(b.Size, a.Size) }, true
	}
	return nil, false
}
