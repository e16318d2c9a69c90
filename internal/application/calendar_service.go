package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/realestate-crm/internal/query"
)

// CalendarService merges activities and room bookings into one timeline.
type CalendarService struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewCalendarService constructs a calendar service over catalog.
func NewCalendarService(catalog *Catalog) *CalendarService {
	return NewCalendarServiceWithLogger(catalog, nil)
}

// NewCalendarServiceWithLogger constructs a calendar service with a specified logger.
func NewCalendarServiceWithLogger(catalog *Catalog, logger *slog.Logger) *CalendarService {
	return &CalendarService{catalog: catalog, logger: defaultLogger(logger)}
}

func (s *CalendarService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CalendarService", operation, attrs...)
}

// ListEvents returns the events starting inside [From, To), ordered by start.
// Activities precede bookings that start at the same instant. A Type filter
// narrows activities to one activity type and drops bookings, unless it is
// "booking", which keeps only bookings.
func (s *CalendarService) ListEvents(ctx context.Context, params CalendarParams) (events []CalendarEvent, err error) {
	if s == nil {
		err = fmt.Errorf("CalendarService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListEvents",
		"from", params.From,
		"to", params.To,
		"type", params.Type,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list calendar events", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(events)).InfoContext(ctx, "calendar events listed")
	}()

	vErr := &ValidationError{}
	if !params.From.IsZero() && !params.To.IsZero() && !params.From.Before(params.To) {
		vErr.add("to", "to must be after from")
	}
	if !validCalendarType(params.Type) {
		vErr.add("type", "type is invalid")
	}
	if err = vErr.orNil(); err != nil {
		return
	}

	inWindow := func(t time.Time) bool {
		if !params.From.IsZero() && t.Before(params.From) {
			return false
		}
		if !params.To.IsZero() && !t.Before(params.To) {
			return false
		}
		return true
	}

	includeActivities := params.Type != string(CalendarEventBooking)
	includeBookings := params.Type == "" || params.Type == query.AllCategories || params.Type == string(CalendarEventBooking)

	events = make([]CalendarEvent, 0)
	if includeActivities {
		activities := query.FilterCategory(s.catalog.Activities(), ActivityType(params.Type), func(a Activity) ActivityType { return a.Type })
		for _, activity := range activities {
			if inWindow(activity.Date) {
				events = append(events, activityEvent(activity))
			}
		}
	}
	if includeBookings {
		for _, booking := range s.catalog.Bookings() {
			if inWindow(booking.Date) {
				events = append(events, bookingEvent(booking))
			}
		}
	}

	events = query.SortStable(events, func(a, b CalendarEvent) int { return a.Start.Compare(b.Start) })
	return
}

func activityEvent(a Activity) CalendarEvent {
	return CalendarEvent{
		ID:         a.ID,
		Kind:       CalendarEventActivity,
		Title:      a.Title,
		Type:       string(a.Type),
		Start:      a.Date,
		PropertyID: cloneString(a.PropertyID),
		ClientID:   cloneString(a.ClientID),
		Contact:    a.Contact,
		Completed:  a.Completed || a.Status == ActivityStatusCompleted,
	}
}

func bookingEvent(b Booking) CalendarEvent {
	room := b.RoomID
	return CalendarEvent{
		ID:      b.ID,
		Kind:    CalendarEventBooking,
		Title:   b.Title,
		Type:    string(CalendarEventBooking),
		Start:   b.Date,
		End:     timePtr(b.EndTime),
		RoomID:  &room,
		Contact: b.BookedBy,
	}
}

func validCalendarType(value string) bool {
	switch value {
	case "", query.AllCategories, string(CalendarEventBooking),
		string(ActivityTypeViewing), string(ActivityTypeMeeting), string(ActivityTypeCall),
		string(ActivityTypeAppointment), string(ActivityTypeTask):
		return true
	}
	return false
}
