package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
)

type colleagueService interface {
	ListColleagues(ctx context.Context, params application.ColleagueListParams) ([]application.User, error)
	Offices(ctx context.Context) []string
	GetColleague(ctx context.Context, id string) (application.ColleagueDetail, error)
	AgentStats(ctx context.Context, agentID string) application.StatusCounts
}

type ColleagueHandler struct {
	service   colleagueService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewColleagueHandler(service colleagueService, formatter *format.Formatter, logger *slog.Logger) *ColleagueHandler {
	base := defaultLogger(logger)
	return &ColleagueHandler{service: service, present: newPresenter(formatter), responder: newResponder(base), logger: base}
}

func (h *ColleagueHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ColleagueHandler", operation, attrs...)
}

// List serves GET /colleagues?q=&office=. The response also carries the
// office names for the filter tabs.
func (h *ColleagueHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	params := application.ColleagueListParams{
		Query:  query.Get("q"),
		Office: strings.TrimSpace(query.Get("office")),
	}
	logger := h.log(r.Context(), "List", "office", params.Office)

	users, err := h.service.ListColleagues(r.Context(), params)
	if err != nil {
		logger.WarnContext(r.Context(), "colleague list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	offices := h.service.Offices(r.Context())
	if offices == nil {
		offices = []string{}
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listColleaguesResponse{
		Colleagues: h.present.colleagues(users),
		Offices:    offices,
	})
}

// Get serves GET /colleagues/{id}.
func (h *ColleagueHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	logger := h.log(r.Context(), "Get", "colleague_id", id)

	detail, err := h.service.GetColleague(r.Context(), id)
	if err != nil {
		logger.WarnContext(r.Context(), "colleague lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, colleagueDetailResponse{
		Colleague:  h.present.colleague(detail.User),
		Properties: h.present.properties(detail.Properties),
		Stats:      toStatusCountsDTO(detail.Stats),
	})
}

// Stats serves GET /colleagues/{id}/stats. Unknown agents get zero counts.
func (h *ColleagueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	stats := h.service.AgentStats(r.Context(), id)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, colleagueStatsResponse{
		AgentID: id,
		Stats:   toStatusCountsDTO(stats),
	})
}

type listColleaguesResponse struct {
	Colleagues []colleagueDTO `json:"colleagues"`
	Offices    []string       `json:"offices"`
}

type colleagueDetailResponse struct {
	Colleague  colleagueDTO    `json:"colleague"`
	Properties []propertyDTO   `json:"properties"`
	Stats      statusCountsDTO `json:"stats"`
}

type colleagueStatsResponse struct {
	AgentID string          `json:"agent_id"`
	Stats   statusCountsDTO `json:"stats"`
}
