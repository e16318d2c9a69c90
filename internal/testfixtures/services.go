package testfixtures

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/bootstrap"
	"github.com/example/realestate-crm/internal/format"
	"github.com/example/realestate-crm/internal/logging"
)

// ServiceFactory assists tests with constructing the CRM services over the
// fixture catalog using deterministic tokens and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Location    *time.Location
	Logger      *slog.Logger
	Snapshot    []SnapshotOption
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("token"),
		Location:    time.UTC,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("token")
	}
	if factory.Logger == nil {
		factory.Logger = logging.Discard()
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the session token generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithSnapshotOptions adjusts the fixture snapshot behind the services.
func WithSnapshotOptions(opts ...SnapshotOption) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Snapshot = append(factory.Snapshot, opts...)
	}
}

// Options returns the bootstrap options the factory applies. The property
// fetch delay is disabled and client
// metrics are derived from activities so responses are deterministic.
func (f *ServiceFactory) Options() bootstrap.ServiceOptions {
	return bootstrap.ServiceOptions{
		Now:            f.Clock.NowFunc(),
		TokenGenerator: f.IDGenerator.NextFunc(),
		Location:       f.Location,
		SessionTTL:     time.Hour,
		MetricsMode:    application.MetricsModeActivity,
		Logger:         f.Logger,
	}
}

// NewServices builds every service over the fixture catalog.
func (f *ServiceFactory) NewServices(tb testing.TB) *bootstrap.Services {
	tb.Helper()
	services, err := bootstrap.NewServices(Catalog(f.Snapshot...), f.Options())
	if err != nil {
		tb.Fatalf("failed to build services: %v", err)
	}
	return services
}

// NewHandler builds the full HTTP router over the fixture services.
func (f *ServiceFactory) NewHandler(tb testing.TB) (http.Handler, *bootstrap.Services) {
	tb.Helper()
	services := f.NewServices(tb)
	return services.Handler(format.New(f.Location), f.Logger), services
}
