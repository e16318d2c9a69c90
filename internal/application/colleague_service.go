package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/realestate-crm/internal/query"
)

// ColleagueService answers the office directory and agent views.
type ColleagueService struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewColleagueService constructs a colleague service over catalog.
func NewColleagueService(catalog *Catalog) *ColleagueService {
	return NewColleagueServiceWithLogger(catalog, nil)
}

// NewColleagueServiceWithLogger constructs a colleague service with a specified logger.
func NewColleagueServiceWithLogger(catalog *Catalog, logger *slog.Logger) *ColleagueService {
	return &ColleagueService{catalog: catalog, logger: defaultLogger(logger)}
}

func (s *ColleagueService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ColleagueService", operation, attrs...)
}

// ListColleagues searches name, email, work role and office, then filters by
// office. Offices are data driven, so an unknown office yields no rows rather
// than a validation error.
func (s *ColleagueService) ListColleagues(ctx context.Context, params ColleagueListParams) (users []User, err error) {
	if s == nil {
		err = fmt.Errorf("ColleagueService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListColleagues",
		"query", params.Query,
		"office", params.Office,
	)
	defer func() {
		logger.With("result_count", len(users)).InfoContext(ctx, "colleagues listed")
	}()

	users = query.Search(s.catalog.Users(), params.Query, func(u User) []string {
		return []string{u.FullName(), u.Email, u.Workrole, u.Office}
	})
	users = query.FilterCategory(users, params.Office, func(u User) string { return u.Office })
	return
}

// Offices returns the distinct office names in first-seen order.
func (s *ColleagueService) Offices(ctx context.Context) []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var offices []string
	for _, user := range s.catalog.Users() {
		if _, ok := seen[user.Office]; ok {
			continue
		}
		seen[user.Office] = struct{}{}
		offices = append(offices, user.Office)
	}
	return offices
}

// GetColleague returns the agent with the properties they handle and their
// per-status counts.
func (s *ColleagueService) GetColleague(ctx context.Context, id string) (detail ColleagueDetail, err error) {
	if s == nil {
		err = fmt.Errorf("ColleagueService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetColleague", "user_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get colleague", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("property_count", len(detail.Properties)).InfoContext(ctx, "colleague resolved")
	}()

	user, ok := query.FindByID(s.catalog.Users(), id, userID)
	if !ok {
		err = ErrNotFound
		return
	}

	properties := s.propertiesByAgent(user.ID)
	detail = ColleagueDetail{User: user, Properties: properties, Stats: countStatuses(properties)}
	return
}

// AgentStats counts the agent's properties per status. Agents without
// properties, including unknown ids, get zero counts.
func (s *ColleagueService) AgentStats(ctx context.Context, agentID string) StatusCounts {
	if s == nil {
		return StatusCounts{}
	}
	stats := countStatuses(s.propertiesByAgent(agentID))
	s.loggerWith(ctx, "AgentStats", "agent_id", agentID).
		With("total", stats.Total).
		DebugContext(ctx, "agent stats computed")
	return stats
}

func (s *ColleagueService) propertiesByAgent(agentID string) []Property {
	return query.ManyBy(s.catalog.Properties(), agentID, func(p Property) string { return p.AgentID })
}

// countStatuses tallies properties in a single pass. Unknown statuses count
// towards Total only.
func countStatuses(properties []Property) StatusCounts {
	tally := query.Tally(properties, func(p Property) PropertyStatus { return p.Status })
	return StatusCounts{
		Available: tally[PropertyStatusAvailable],
		Pending:   tally[PropertyStatusPending],
		Sold:      tally[PropertyStatusSold],
		Total:     len(properties),
	}
}
