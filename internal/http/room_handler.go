package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
)

type roomService interface {
	ListRooms(ctx context.Context, params application.RoomListParams) ([]application.MeetingRoom, error)
	GetRoom(ctx context.Context, id string) (application.RoomDetail, error)
	ListBookings(ctx context.Context, id string) ([]application.Booking, error)
	SelectSlots(start, end string) application.SlotSelection
	ValidateDraft(ctx context.Context, draft application.BookingDraft) (application.BookingDraftResult, error)
}

type RoomHandler struct {
	service   roomService
	present   presenter
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(service roomService, formatter *format.Formatter, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{service: service, present: newPresenter(formatter), responder: newResponder(base), logger: base}
}

func (h *RoomHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "RoomHandler", operation, attrs...)
}

// List serves GET /rooms?office=.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	office := strings.TrimSpace(r.URL.Query().Get("office"))
	logger := h.log(r.Context(), "List", "office", office)

	rooms, err := h.service.ListRooms(r.Context(), application.RoomListParams{Office: office})
	if err != nil {
		logger.WarnContext(r.Context(), "room list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).DebugContext(r.Context(), "rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: h.present.rooms(rooms)})
}

// Get serves GET /rooms/{id}.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	logger := h.log(r.Context(), "Get", "room_id", id)

	detail, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		logger.WarnContext(r.Context(), "room lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomDetailResponse{
		Room:     h.present.room(detail.Room),
		Bookings: h.present.bookings(detail.Bookings),
	})
}

// Bookings serves GET /rooms/{id}/bookings.
func (h *RoomHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}
	logger := h.log(r.Context(), "Bookings", "room_id", id)

	bookings, err := h.service.ListBookings(r.Context(), id)
	if err != nil {
		logger.WarnContext(r.Context(), "booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: h.present.bookings(bookings)})
}

// Slots serves GET /booking-slots?start=&end=.
func (h *RoomHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	selection := h.service.SelectSlots(strings.TrimSpace(query.Get("start")), strings.TrimSpace(query.Get("end")))

	options := make([]slotOptionDTO, 0, len(selection.EndOptions))
	for _, option := range selection.EndOptions {
		options = append(options, slotOptionDTO{Label: option.Label, Disabled: option.Disabled})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, slotSelectionResponse{
		Starts:     selection.Starts,
		EndOptions: options,
		End:        selection.End,
	})
}

// ValidateDraft serves POST /rooms/{id}/booking-drafts. An invalid draft is
// a normal outcome and is answered with 200 and can_submit=false.
func (h *RoomHandler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req bookingDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ValidateDraft", "room_id", id, "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode booking draft", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ValidateDraft", "room_id", id)
	result, err := h.service.ValidateDraft(r.Context(), req.toDraft(id))
	if err != nil {
		logger.ErrorContext(r.Context(), "booking draft validation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	resp := bookingDraftResponse{
		CanSubmit: result.CanSubmit,
		Errors:    localizeValidationErrors(result.Errors),
	}
	if result.Start != nil {
		resp.Start = result.Start.UTC().Format(time.RFC3339)
	}
	if result.End != nil {
		resp.End = result.End.UTC().Format(time.RFC3339)
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

type bookingDraftRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r bookingDraftRequest) toDraft(roomID string) application.BookingDraft {
	return application.BookingDraft{
		RoomID: roomID,
		Title:  strings.TrimSpace(r.Title),
		Date:   strings.TrimSpace(r.Date),
		Start:  strings.TrimSpace(r.Start),
		End:    strings.TrimSpace(r.End),
	}
}

type bookingDraftResponse struct {
	CanSubmit bool              `json:"can_submit"`
	Start     string            `json:"start,omitempty"`
	End       string            `json:"end,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type listRoomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type roomDetailResponse struct {
	Room     roomDTO      `json:"room"`
	Bookings []bookingDTO `json:"bookings"`
}

type listBookingsResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

type slotOptionDTO struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

type slotSelectionResponse struct {
	Starts     []string        `json:"starts"`
	EndOptions []slotOptionDTO `json:"end_options"`
	End        string          `json:"end"`
}
