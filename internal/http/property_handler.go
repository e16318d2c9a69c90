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

type propertyService interface {
	ListProperties(ctx context.Context, params application.PropertyListParams) ([]application.Property, error)
	GetProperty(ctx context.Context, id string) (application.PropertyDetail, error)
}

type PropertyHandler struct {
	service   propertyService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewPropertyHandler(service propertyService, formatter *format.Formatter, logger *slog.Logger) *PropertyHandler {
	base := defaultLogger(logger)
	return &PropertyHandler{service: service, present: newPresenter(formatter), responder: newResponder(base), logger: base}
}

func (h *PropertyHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PropertyHandler", operation, attrs...)
}

// List serves GET /properties?q=&status=&sort=.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	params := application.PropertyListParams{
		Query:  query.Get("q"),
		Status: strings.TrimSpace(query.Get("status")),
		Sort:   application.PropertySort(strings.TrimSpace(query.Get("sort"))),
	}
	logger := h.log(r.Context(), "List", "status", params.Status, "sort", string(params.Sort))

	properties, err := h.service.ListProperties(r.Context(), params)
	if err != nil {
		logger.WarnContext(r.Context(), "property list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listPropertiesResponse{Properties: h.present.properties(properties)})
}

// Get serves GET /properties/{id}. The response waits for the configured
// fetch delay; a client disconnect abandons the wait.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	logger := h.log(r.Context(), "Get", "property_id", id)

	detail, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		logger.WarnContext(r.Context(), "property lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	resp := propertyDetailResponse{
		Property:         h.present.property(detail.Property),
		Owner:            h.present.optionalClient(detail.Owner),
		Buyer:            h.present.optionalClient(detail.Buyer),
		Offers:           h.present.offers(detail.Offers),
		UpcomingViewings: h.present.activities(detail.UpcomingViewings),
		Activities:       h.present.activities(detail.Activities),
	}
	if detail.Agent != nil {
		agent := h.present.colleague(*detail.Agent)
		resp.Agent = &agent
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

type listPropertiesResponse struct {
	Properties []propertyDTO `json:"properties"`
}

type propertyDetailResponse struct {
	Property         propertyDTO   `json:"property"`
	Agent            *colleagueDTO `json:"agent"`
	Owner            *clientDTO    `json:"owner"`
	Buyer            *clientDTO    `json:"buyer"`
	Offers           []offerDTO    `json:"offers"`
	UpcomingViewings []activityDTO `json:"upcoming_viewings"`
	Activities       []activityDTO `json:"activities"`
}
