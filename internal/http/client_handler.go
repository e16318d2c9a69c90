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

type clientService interface {
	ListClients(ctx context.Context, params application.ClientListParams) ([]application.ClientView, error)
	GetClient(ctx context.Context, id string) (application.ClientDetail, error)
}

type ClientHandler struct {
	service   clientService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewClientHandler(service clientService, formatter *format.Formatter, logger *slog.Logger) *ClientHandler {
	base := defaultLogger(logger)
	return &ClientHandler{service: service, present: newPresenter(formatter), responder: newResponder(base), logger: base}
}

func (h *ClientHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ClientHandler", operation, attrs...)
}

// List serves GET /clients?q=&type=.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	params := application.ClientListParams{
		Query: query.Get("q"),
		Type:  strings.TrimSpace(query.Get("type")),
	}
	logger := h.log(r.Context(), "List", "type", params.Type)

	views, err := h.service.ListClients(r.Context(), params)
	if err != nil {
		logger.WarnContext(r.Context(), "client list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]clientViewDTO, 0, len(views))
	for _, view := range views {
		out = append(out, h.present.clientView(view))
	}
	logger.With("result_count", len(out)).DebugContext(r.Context(), "clients listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listClientsResponse{Clients: out})
}

// Get serves GET /clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	logger := h.log(r.Context(), "Get", "client_id", id)

	detail, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		logger.WarnContext(r.Context(), "client lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, clientDetailResponse{
		Client:              h.present.clientView(detail.View),
		Activities:          h.present.activities(detail.Activities),
		OwnedProperties:     h.present.properties(detail.OwnedProperties),
		PurchasedProperties: h.present.properties(detail.PurchasedProperties),
		Offers:              h.present.offers(detail.Offers),
	})
}

type listClientsResponse struct {
	Clients []clientViewDTO `json:"clients"`
}

type clientDetailResponse struct {
	Client              clientViewDTO `json:"client"`
	Activities          []activityDTO `json:"activities"`
	OwnedProperties     []propertyDTO `json:"owned_properties"`
	PurchasedProperties []propertyDTO `json:"purchased_properties"`
	Offers              []offerDTO    `json:"offers"`
}
