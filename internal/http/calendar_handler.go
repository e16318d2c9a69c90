package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
)

type calendarService interface {
	ListEvents(ctx context.Context, params application.CalendarParams) ([]application.CalendarEvent, error)
}

type CalendarHandler struct {
	service   calendarService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewCalendarHandler(service calendarService, formatter *format.Formatter, logger *slog.Logger) *CalendarHandler {
	base := defaultLogger(logger)
	return &CalendarHandler{service: service, present: newPresenter(formatter), responder: newResponder(base), logger: base}
}

func (h *CalendarHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CalendarHandler", operation, attrs...)
}

// List serves GET /calendar?from=&to=&type=. Bounds accept a plain date,
// taken as local midnight in the office time zone, or an RFC 3339 instant.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	loc := h.present.format.Location()
	from, err := parseBound(query.Get("from"), loc)
	if err != nil {
		h.log(r.Context(), "List", "error_kind", "bad_request").WarnContext(r.Context(), "invalid from bound", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}
	to, err := parseBound(query.Get("to"), loc)
	if err != nil {
		h.log(r.Context(), "List", "error_kind", "bad_request").WarnContext(r.Context(), "invalid to bound", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	params := application.CalendarParams{From: from, To: to, Type: strings.TrimSpace(query.Get("type"))}
	logger := h.log(r.Context(), "List", "type", params.Type)

	events, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		logger.WarnContext(r.Context(), "calendar list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]calendarEventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, h.present.calendarEvent(event))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, calendarResponse{Events: out})
}

func parseBound(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type calendarResponse struct {
	Events []calendarEventDTO `json:"events"`
}
