package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
	httptransport "github.com/example/realestate-crm/internal/http"
)

// ServiceOptions carries the runtime settings shared by the services.
// Zero values fall back to each service's defaults.
type ServiceOptions struct {
	Now                func() time.Time
	TokenGenerator     func() string
	Welcome            application.WelcomeTracker
	Location           *time.Location
	SessionTTL         time.Duration
	PropertyFetchDelay time.Duration
	GlobalSearchLimit  int
	MetricsMode        string
	Logger             *slog.Logger
}

// Services bundles every query service over one catalog.
type Services struct {
	Auth       *application.AuthService
	Clients    *application.ClientService
	Properties *application.PropertyService
	Colleagues *application.ColleagueService
	Rooms      *application.RoomService
	Calendar   *application.CalendarService
	Search     *application.SearchService
	Dashboard  *application.DashboardService
}

// NewServices wires the services over catalog.
func NewServices(catalog *application.Catalog, opts ServiceOptions) (*Services, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	welcome := opts.Welcome
	if welcome == nil {
		welcome = application.NewMemoryWelcomeTracker()
	}
	location := opts.Location
	if location == nil {
		location = time.UTC
	}

	metrics, err := application.NewMetricsProvider(opts.MetricsMode, catalog, now)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	logger := opts.Logger
	return &Services{
		Auth:       application.NewAuthServiceWithLogger(welcome, opts.TokenGenerator, now, opts.SessionTTL, logger),
		Clients:    application.NewClientServiceWithLogger(catalog, metrics, logger),
		Properties: application.NewPropertyServiceWithLogger(catalog, opts.PropertyFetchDelay, now, logger),
		Colleagues: application.NewColleagueServiceWithLogger(catalog, logger),
		Rooms:      application.NewRoomServiceWithLogger(catalog, location, logger),
		Calendar:   application.NewCalendarServiceWithLogger(catalog, logger),
		Search:     application.NewSearchServiceWithLogger(catalog, opts.GlobalSearchLimit, logger),
		Dashboard:  application.NewDashboardServiceWithLogger(catalog, now, logger),
	}, nil
}

// Handler mounts the services on the HTTP router. Every route except
// /healthz and POST /sessions requires a session.
func (s *Services) Handler(formatter *format.Formatter, logger *slog.Logger) http.Handler {
	return httptransport.NewRouter(httptransport.RouterConfig{
		Auth:       httptransport.NewAuthHandler(s.Auth, logger),
		Clients:    httptransport.NewClientHandler(s.Clients, formatter, logger),
		Properties: httptransport.NewPropertyHandler(s.Properties, formatter, logger),
		Colleagues: httptransport.NewColleagueHandler(s.Colleagues, formatter, logger),
		Rooms:      httptransport.NewRoomHandler(s.Rooms, formatter, logger),
		Calendar:   httptransport.NewCalendarHandler(s.Calendar, formatter, logger),
		Overview:   httptransport.NewOverviewHandler(s.Search, s.Dashboard, formatter, logger),
		Sessions:   s.Auth,
		Logger:     logger,
	})
}
