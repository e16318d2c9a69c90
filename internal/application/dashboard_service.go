package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/realestate-crm/internal/query"
)

const defaultDashboardItems = 5

// DashboardService aggregates the landing page figures.
type DashboardService struct {
	catalog *Catalog
	items   int
	now     func() time.Time
	logger  *slog.Logger
}

// NewDashboardService constructs a dashboard service over catalog.
func NewDashboardService(catalog *Catalog, now func() time.Time) *DashboardService {
	return NewDashboardServiceWithLogger(catalog, now, nil)
}

// NewDashboardServiceWithLogger constructs a dashboard service with a specified logger.
func NewDashboardServiceWithLogger(catalog *Catalog, now func() time.Time, logger *slog.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{catalog: catalog, items: defaultDashboardItems, now: now, logger: defaultLogger(logger)}
}

func (s *DashboardService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "DashboardService", operation, attrs...)
}

// Summary counts properties per status and clients per type, and lists the
// next upcoming activities and the most recent offers.
func (s *DashboardService) Summary(ctx context.Context) (summary DashboardSummary, err error) {
	if s == nil {
		err = fmt.Errorf("DashboardService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Summary")
	defer func() {
		logger.With(
			"property_total", summary.Properties.Total,
			"upcoming_count", len(summary.UpcomingActivities),
			"offer_count", len(summary.RecentOffers),
		).InfoContext(ctx, "dashboard summarized")
	}()

	now := s.now()
	upcoming := query.Where(s.catalog.Activities(), func(a Activity) bool { return a.Date.After(now) })

	summary = DashboardSummary{
		Properties:         countStatuses(s.catalog.Properties()),
		ClientsByType:      query.Tally(s.catalog.Clients(), func(c Client) ClientType { return c.Type }),
		UpcomingActivities: query.Limit(query.SortStable(upcoming, activitiesSoonestFirst), s.items),
		RecentOffers:       query.Limit(query.SortStable(s.catalog.Offers(), offersNewestFirst), s.items),
	}
	return
}
