package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/example/realestate-crm/internal/query"
	"github.com/example/realestate-crm/internal/slots"
)

var draftValidator = validator.New(validator.WithRequiredStructEnabled())

// RoomService answers the meeting room views and the booking form state.
type RoomService struct {
	catalog  *Catalog
	location *time.Location
	logger   *slog.Logger
}

// NewRoomService constructs a room service over catalog.
func NewRoomService(catalog *Catalog, location *time.Location) *RoomService {
	return NewRoomServiceWithLogger(catalog, location, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
// Booking drafts are interpreted as wall-clock times in location.
func NewRoomServiceWithLogger(catalog *Catalog, location *time.Location, logger *slog.Logger) *RoomService {
	if location == nil {
		location = time.UTC
	}
	return &RoomService{catalog: catalog, location: location, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// ListRooms returns the rooms of an office, or all rooms for "all" or "".
func (s *RoomService) ListRooms(ctx context.Context, params RoomListParams) (rooms []MeetingRoom, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListRooms", "office", params.Office)
	defer func() {
		logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	}()

	rooms = query.FilterCategory(s.catalog.Rooms(), params.Office, func(r MeetingRoom) string { return r.Office })
	return
}

// GetRoom returns the room with its bookings ordered by start.
func (s *RoomService) GetRoom(ctx context.Context, id string) (detail RoomDetail, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetRoom", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_count", len(detail.Bookings)).InfoContext(ctx, "room resolved")
	}()

	room, ok := query.FindByID(s.catalog.Rooms(), id, roomID)
	if !ok {
		err = ErrNotFound
		return
	}
	detail = RoomDetail{Room: room, Bookings: s.bookingsFor(room.ID)}
	return
}

// ListBookings returns the bookings of a known room ordered by start.
func (s *RoomService) ListBookings(ctx context.Context, id string) ([]Booking, error) {
	detail, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail.Bookings, nil
}

// SelectSlots returns the selector state after start is chosen. The end
// option list always holds every slot; options at or before start are
// disabled, and the end advances one hour past start when possible.
func (s *RoomService) SelectSlots(start, end string) SlotSelection {
	options := slots.EndOptions(start)
	selection := SlotSelection{
		Starts:     slots.Labels(),
		EndOptions: make([]SlotOption, len(options)),
		End:        slots.AdvanceEnd(start, end),
	}
	for i, option := range options {
		selection.EndOptions[i] = SlotOption{Label: option.Label, Disabled: option.Disabled}
	}
	return selection
}

// ValidateDraft reports whether the booking form may be submitted. Invalid
// drafts are not errors: the result carries the field problems and
// CanSubmit=false. Only a missing service returns an error.
func (s *RoomService) ValidateDraft(ctx context.Context, draft BookingDraft) (result BookingDraftResult, err error) {
	if s == nil {
		err = fmt.Errorf("RoomService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ValidateDraft", "room_id", draft.RoomID)
	defer func() {
		logger.With("can_submit", result.CanSubmit, "invalid_fields", result.Errors.Fields()).InfoContext(ctx, "booking draft validated")
	}()

	draft.Title = strings.TrimSpace(draft.Title)
	vErr := validateDraftStruct(draft)
	vErr.merge(s.validateDraftSlots(draft))

	if vErr.HasErrors() {
		result.Errors = vErr
		return
	}

	date, parseErr := time.ParseInLocation(time.DateOnly, draft.Date, s.location)
	if parseErr != nil {
		vErr.add("date", "date is invalid")
		result.Errors = vErr
		return
	}
	start, _ := slots.On(date, draft.Start, s.location)
	end, _ := slots.On(date, draft.End, s.location)
	result = BookingDraftResult{CanSubmit: true, Start: timePtr(start), End: timePtr(end)}
	return
}

func (s *RoomService) bookingsFor(id string) []Booking {
	bookings := query.ManyBy(s.catalog.Bookings(), id, func(b Booking) string { return b.RoomID })
	return query.SortStable(bookings, func(a, b Booking) int { return a.Date.Compare(b.Date) })
}

// validateDraftSlots checks the parts of a draft that depend on the catalog
// and the slot grid. Empty fields are left to validateDraftStruct.
func (s *RoomService) validateDraftSlots(draft BookingDraft) *ValidationError {
	vErr := &ValidationError{}
	if draft.RoomID != "" {
		if _, ok := query.FindByID(s.catalog.Rooms(), draft.RoomID, roomID); !ok {
			vErr.add("room_id", "room does not exist")
		}
	}
	if draft.Start != "" && slots.Index(draft.Start) < 0 {
		vErr.add("start", "start is not a bookable slot")
	}
	if draft.End != "" && slots.Index(draft.End) < 0 {
		vErr.add("end", "end is not a bookable slot")
	}
	if slots.Index(draft.Start) >= 0 && slots.Index(draft.End) >= 0 && !slots.Before(draft.Start, draft.End) {
		vErr.add("end", "end must be after start")
	}
	return vErr
}

func validateDraftStruct(draft BookingDraft) *ValidationError {
	vErr := &ValidationError{}
	err := draftValidator.Struct(draft)
	if err == nil {
		return vErr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		vErr.add("draft", "draft is invalid")
		return vErr
	}
	for _, fe := range fieldErrs {
		field := draftFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			vErr.add(field, field+" is required")
		default:
			vErr.add(field, field+" is invalid")
		}
	}
	return vErr
}

func draftFieldName(structField string) string {
	switch structField {
	case "RoomID":
		return "room_id"
	default:
		return strings.ToLower(structField)
	}
}
