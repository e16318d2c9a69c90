package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
)

type searchService interface {
	Search(ctx context.Context, q string) (application.GlobalSearchResult, error)
}

type dashboardService interface {
	Summary(ctx context.Context) (application.DashboardSummary, error)
}

// OverviewHandler serves the header search and the dashboard.
type OverviewHandler struct {
	search    searchService
	dashboard dashboardService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewOverviewHandler(search searchService, dashboard dashboardService, formatter *format.Formatter, logger *slog.Logger) *OverviewHandler {
	base := defaultLogger(logger)
	return &OverviewHandler{
		search:    search,
		dashboard: dashboard,
		present:   newPresenter(formatter),
		responder: newResponder(base),
		logger:    base,
	}
}

func (h *OverviewHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "OverviewHandler", operation, attrs...)
}

// Search serves GET /search?q=. Queries shorter than two characters return
// empty lists.
func (h *OverviewHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.search == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	result, err := h.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log(r.Context(), "Search").ErrorContext(r.Context(), "search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, searchResponse{
		Query:      result.Query,
		Clients:    h.present.clients(result.Clients),
		Properties: h.present.properties(result.Properties),
	})
}

// Dashboard serves GET /dashboard.
func (h *OverviewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.dashboard == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.log(r.Context(), "Dashboard").ErrorContext(r.Context(), "dashboard failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	clients := make(map[string]int, len(summary.ClientsByType))
	for clientType, count := range summary.ClientsByType {
		clients[string(clientType)] = count
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dashboardResponse{
		Properties:         toStatusCountsDTO(summary.Properties),
		ClientsByType:      clients,
		UpcomingActivities: h.present.activities(summary.UpcomingActivities),
		RecentOffers:       h.present.offers(summary.RecentOffers),
	})
}

// Health serves GET /healthz without a session.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

type searchResponse struct {
	Query      string        `json:"query"`
	Clients    []clientDTO   `json:"clients"`
	Properties []propertyDTO `json:"properties"`
}

type dashboardResponse struct {
	Properties         statusCountsDTO `json:"properties"`
	ClientsByType      map[string]int  `json:"clients_by_type"`
	UpcomingActivities []activityDTO   `json:"upcoming_activities"`
	RecentOffers       []offerDTO      `json:"recent_offers"`
}
