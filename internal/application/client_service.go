package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/realestate-crm/internal/query"
)

// ClientService answers the client list and client detail views.
type ClientService struct {
	catalog *Catalog
	metrics MetricsProvider
	logger  *slog.Logger
}

// NewClientService constructs a client service over catalog.
func NewClientService(catalog *Catalog, metrics MetricsProvider) *ClientService {
	return NewClientServiceWithLogger(catalog, metrics, nil)
}

// NewClientServiceWithLogger constructs a client service with a specified logger.
func NewClientServiceWithLogger(catalog *Catalog, metrics MetricsProvider, logger *slog.Logger) *ClientService {
	if metrics == nil {
		metrics = NewPlaceholderMetrics(nil, nil)
	}
	return &ClientService{catalog: catalog, metrics: metrics, logger: defaultLogger(logger)}
}

func (s *ClientService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ClientService", operation, attrs...)
}

// ListClients searches name, email and phone, then filters by client type.
// A blank query lists every client.
func (s *ClientService) ListClients(ctx context.Context, params ClientListParams) (views []ClientView, err error) {
	if s == nil {
		err = fmt.Errorf("ClientService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListClients",
		"query", params.Query,
		"type", params.Type,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list clients", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(views)).InfoContext(ctx, "clients listed")
	}()

	vErr := &ValidationError{}
	if !validClientCategory(params.Type) {
		vErr.add("type", "type is invalid")
	}
	if err = vErr.orNil(); err != nil {
		return
	}

	clients := query.Search(s.catalog.Clients(), params.Query, clientSearchFields)
	clients = query.FilterCategory(clients, ClientType(params.Type), func(c Client) ClientType { return c.Type })

	views = make([]ClientView, 0, len(clients))
	for _, client := range clients {
		views = append(views, s.view(client))
	}
	return
}

// GetClient returns the client with its activities, properties and offers.
func (s *ClientService) GetClient(ctx context.Context, id string) (detail ClientDetail, err error) {
	if s == nil {
		err = fmt.Errorf("ClientService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetClient", "client_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get client", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "client resolved")
	}()

	client, ok := query.FindByID(s.catalog.Clients(), id, clientID)
	if !ok {
		err = ErrNotFound
		return
	}

	properties := s.catalog.Properties()
	detail = ClientDetail{
		View:            s.view(client),
		Activities:      query.SortStable(query.ManyByOptional(s.catalog.Activities(), client.ID, activityClient), activitiesNewestFirst),
		OwnedProperties: query.ManyBy(properties, client.ID, func(p Property) string { return p.OwnerID }),
		PurchasedProperties: query.ManyByOptional(properties, client.ID, func(p Property) *string {
			return p.BuyerID
		}),
		Offers: query.SortStable(query.ManyBy(s.catalog.Offers(), client.ID, func(o Offer) string { return o.BuyerID }), offersNewestFirst),
	}
	return
}

func (s *ClientService) view(client Client) ClientView {
	view := ClientView{Client: client, InterestLevel: s.metrics.InterestLevel(client)}
	if last, ok := s.metrics.LastInteraction(client); ok {
		view.LastInteraction = &last
	}
	return view
}

func clientSearchFields(c Client) []string {
	return []string{c.FullName(), c.Email, c.Phone}
}

func validClientCategory(value string) bool {
	switch value {
	case "", query.AllCategories, string(ClientTypeBuyer), string(ClientTypeSeller), string(ClientTypeBoth):
		return true
	}
	return false
}

func activitiesNewestFirst(a, b Activity) int {
	return b.Date.Compare(a.Date)
}

func activitiesSoonestFirst(a, b Activity) int {
	return a.Date.Compare(b.Date)
}

func offersNewestFirst(a, b Offer) int {
	return b.Date.Compare(a.Date)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
