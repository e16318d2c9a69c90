package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRoomService_ListRooms(t *testing.T) {
	t.Parallel()

	svc := NewRoomService(sampleCatalog(), time.UTC)

	cases := []struct {
		office string
		want   []string
	}{
		{office: "", want: []string{"r1", "r2", "r3"}},
		{office: "all", want: []string{"r1", "r2", "r3"}},
		{office: "Stockholm", want: []string{"r1", "r2"}},
		{office: "Malmö", want: []string{}},
	}
	for _, tc := range cases {
		rooms, err := svc.ListRooms(context.Background(), RoomListParams{Office: tc.office})
		if err != nil {
			t.Fatalf("ListRooms(%q) failed: %v", tc.office, err)
		}
		if got := ids(rooms, func(r MeetingRoom) string { return r.ID }); !equalIDs(got, tc.want) {
			t.Fatalf("office %q: expected %v, got %v", tc.office, tc.want, got)
		}
	}
}

func TestRoomService_GetRoom(t *testing.T) {
	t.Parallel()

	svc := NewRoomService(sampleCatalog(), time.UTC)

	t.Run("orders bookings by start", func(t *testing.T) {
		t.Parallel()

		detail, err := svc.GetRoom(context.Background(), "r1")
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if got := ids(detail.Bookings, func(b Booking) string { return b.ID }); !equalIDs(got, []string{"b2", "b1"}) {
			t.Fatalf("expected bookings b2 b1, got %v", got)
		}
	})

	t.Run("unavailable rooms keep their bookings", func(t *testing.T) {
		t.Parallel()

		bookings, err := svc.ListBookings(context.Background(), "r2")
		if err != nil {
			t.Fatalf("ListBookings failed: %v", err)
		}
		if len(bookings) != 0 {
			t.Fatalf("expected no bookings for r2, got %d", len(bookings))
		}
	})

	t.Run("returns not found for unknown room", func(t *testing.T) {
		t.Parallel()

		if _, err := svc.ListBookings(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoomService_SelectSlots(t *testing.T) {
	t.Parallel()

	svc := NewRoomService(sampleCatalog(), time.UTC)
	selection := svc.SelectSlots("09:00", "")

	if len(selection.Starts) != 20 || len(selection.EndOptions) != 20 {
		t.Fatalf("expected 20 start and end options, got %d and %d", len(selection.Starts), len(selection.EndOptions))
	}
	if selection.End != "10:00" {
		t.Fatalf("expected end to advance to 10:00, got %s", selection.End)
	}
	for _, option := range selection.EndOptions {
		wantDisabled := option.Label <= "09:00"
		if option.Disabled != wantDisabled {
			t.Fatalf("option %s: expected disabled=%v", option.Label, wantDisabled)
		}
	}

	late := svc.SelectSlots("17:00", "17:30")
	if late.End != "17:30" {
		t.Fatalf("expected end to stay 17:30 when no slot two steps ahead exists, got %s", late.End)
	}
}

func TestRoomService_ValidateDraft(t *testing.T) {
	t.Parallel()

	svc := NewRoomService(sampleCatalog(), time.UTC)

	t.Run("accepts a complete draft", func(t *testing.T) {
		t.Parallel()

		result, err := svc.ValidateDraft(context.Background(), BookingDraft{
			RoomID: "r1", Title: "Säljmöte", Date: "2024-03-20", Start: "09:00", End: "10:30",
		})
		if err != nil {
			t.Fatalf("ValidateDraft failed: %v", err)
		}
		if !result.CanSubmit || result.Errors != nil {
			t.Fatalf("expected submittable draft, got %+v", result)
		}
		if !result.Start.Equal(at(time.March, 20, 9, 0)) || !result.End.Equal(at(time.March, 20, 10, 30)) {
			t.Fatalf("unexpected interval %s - %s", result.Start, result.End)
		}
	})

	cases := []struct {
		name   string
		draft  BookingDraft
		fields []string
	}{
		{
			name:   "requires every field",
			draft:  BookingDraft{Title: "   "},
			fields: []string{"date", "end", "room_id", "start", "title"},
		},
		{
			name:   "rejects unknown room",
			draft:  BookingDraft{RoomID: "r9", Title: "Möte", Date: "2024-03-20", Start: "09:00", End: "10:00"},
			fields: []string{"room_id"},
		},
		{
			name:   "rejects malformed date",
			draft:  BookingDraft{RoomID: "r1", Title: "Möte", Date: "20/03/2024", Start: "09:00", End: "10:00"},
			fields: []string{"date"},
		},
		{
			name:   "rejects off-grid slots",
			draft:  BookingDraft{RoomID: "r1", Title: "Möte", Date: "2024-03-20", Start: "09:15", End: "18:00"},
			fields: []string{"end", "start"},
		},
		{
			name:   "combines missing fields with slot and room problems",
			draft:  BookingDraft{RoomID: "r9", Date: "2024-03-20", Start: "09:15", End: "10:00"},
			fields: []string{"room_id", "start", "title"},
		},
		{
			name:   "requires end after start",
			draft:  BookingDraft{RoomID: "r1", Title: "Möte", Date: "2024-03-20", Start: "10:00", End: "10:00"},
			fields: []string{"end"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := svc.ValidateDraft(context.Background(), tc.draft)
			if err != nil {
				t.Fatalf("ValidateDraft failed: %v", err)
			}
			if result.CanSubmit {
				t.Fatalf("expected draft to be rejected")
			}
			if got := result.Errors.Fields(); !equalIDs(got, tc.fields) {
				t.Fatalf("expected field errors %v, got %v", tc.fields, got)
			}
		})
	}
}
