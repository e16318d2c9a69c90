package testfixtures

import (
	"context"
	"time"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/bootstrap"
	"github.com/example/realestate-crm/internal/persistence"
)

// SnapshotOption adjusts the fixture snapshot before it is returned.
type SnapshotOption func(*persistence.Snapshot)

// WithDanglingReferences adds a listing whose agent and owner do not exist
// and an activity pointing at an unknown property.
func WithDanglingReferences() SnapshotOption {
	return func(s *persistence.Snapshot) {
		s.Properties = append(s.Properties, persistence.Property{
			ID: "p-orphan", Address: "Okändgatan 9", City: "Malmö", PostalCode: "211 20",
			Price: 1_900_000, Size: 55, Rooms: 2, Type: "cottage", Status: "available",
			Images: []string{}, AgentID: "u-missing", OwnerID: "c-missing",
			ListedAt: day(-60, 9), CreatedAt: day(-61, 9), Description: "Stuga utan ägare",
		})
		s.Activities = append(s.Activities, persistence.Activity{
			ID: "a-orphan", Title: "Visning okänd", Type: "viewing", Date: day(4, 15),
			Status: "scheduled", PropertyID: ptr("p-missing"), ClientID: ptr("c1"),
		})
	}
}

// WithoutBookings drops every room booking.
func WithoutBookings() SnapshotOption {
	return func(s *persistence.Snapshot) {
		s.Bookings = nil
	}
}

// Snapshot returns a small office laid out around ReferenceTime: three
// colleagues, four clients, four listings, activities on both sides of the
// reference time, offers and room bookings.
func Snapshot(opts ...SnapshotOption) persistence.Snapshot {
	snapshot := persistence.Snapshot{
		Users: []persistence.User{
			{ID: "u1", FirstName: "Anna", LastName: "Lind", Workrole: "Mäklare", Office: "Stockholm", Email: "anna.lind@crm.se", Phone: "08-111 11"},
			{ID: "u2", FirstName: "Erik", LastName: "Berg", Workrole: "Assistent", Office: "Göteborg", Email: "erik.berg@crm.se", Phone: "031-222 22"},
			{ID: "u3", FirstName: "Maria", LastName: "Ek", Workrole: "Mäklare", Office: "Stockholm", Email: "maria.ek@crm.se", Phone: "08-333 33"},
		},
		Clients: []persistence.Client{
			{ID: "c1", FirstName: "Karin", LastName: "Svensson", Email: "karin.svensson@example.se", Phone: "070-111 11 11", Type: "buyer"},
			{ID: "c2", FirstName: "Lars", LastName: "Johansson", Email: "lars.johansson@example.se", Phone: "070-222 22 22", Type: "seller"},
			{ID: "c3", FirstName: "Sofia", LastName: "Nilsson", Email: "sofia.nilsson@example.se", Phone: "070-333 33 33", Type: "both"},
			{ID: "c4", FirstName: "Olof", LastName: "Karlsson", Email: "olof.karlsson@example.se", Phone: "070-444 44 44", Type: "buyer"},
		},
		Properties: []persistence.Property{
			{ID: "p1", Address: "Storgatan 1", City: "Stockholm", PostalCode: "111 22", Price: 4_950_000, Size: 72, Rooms: 3, Type: "apartment", Status: "available", Images: []string{"p1.jpg"}, AgentID: "u1", OwnerID: "c2", ListedAt: day(-40, 9), CreatedAt: day(-42, 9), Description: "Ljus lägenhet med balkong"},
			{ID: "p2", Address: "Sjövägen 12", City: "Göteborg", PostalCode: "413 01", Price: 8_200_000, Size: 180, Rooms: 6, Type: "villa", Status: "sold", Images: []string{}, AgentID: "u1", OwnerID: "c3", BuyerID: ptr("c1"), ListedAt: day(-90, 9), CreatedAt: day(-95, 9), Description: "Villa vid havet"},
			{ID: "p3", Address: "Ekvägen 5", City: "Uppsala", PostalCode: "752 20", Price: 3_100_000, Size: 120, Rooms: 5, Type: "house", Status: "pending", Images: []string{}, AgentID: "u3", OwnerID: "c2", ListedAt: day(-14, 9), CreatedAt: day(-15, 9), Description: "Renoverat hus"},
			{ID: "p4", Address: "Parkgatan 8", City: "Stockholm", PostalCode: "114 30", Price: 5_500_000, Size: 110, Rooms: 4, Type: "townhouse", Status: "available", Images: []string{"p4a.jpg", "p4b.jpg"}, AgentID: "u1", OwnerID: "c3", ListedAt: day(-25, 9), CreatedAt: day(-26, 9), Description: "Radhus nära park"},
		},
		Activities: []persistence.Activity{
			{ID: "a1", Title: "Visning Storgatan", Type: "viewing", Date: day(3, 10), Status: "scheduled", PropertyID: ptr("p1"), ClientID: ptr("c1")},
			{ID: "a2", Title: "Visning Storgatan", Type: "viewing", Date: day(1, 14), Status: "scheduled", PropertyID: ptr("p1"), ClientID: ptr("c4")},
			{ID: "a3", Title: "Möte om bud", Type: "meeting", Date: day(-5, 9), Status: "completed", PropertyID: ptr("p1"), ClientID: ptr("c1"), Completed: true},
			{ID: "a4", Title: "Uppföljning", Type: "call", Date: day(-3, 11), Status: "completed", ClientID: ptr("c3"), Completed: true},
			{ID: "a5", Title: "Beställ fotograf", Type: "task", Date: day(5, 8), Status: "scheduled"},
		},
		Offers: []persistence.Offer{
			{ID: "o1", PropertyID: "p2", BuyerID: "c1", Amount: 8_000_000, Date: day(-30, 10), Status: "accepted"},
			{ID: "o2", PropertyID: "p1", BuyerID: "c4", Amount: 4_800_000, Date: day(-4, 10), Status: "submitted"},
			{ID: "o3", PropertyID: "p1", BuyerID: "c1", Amount: 4_900_000, Date: day(-2, 10), Status: "negotiating"},
		},
		Rooms: []persistence.MeetingRoom{
			{ID: "r1", Name: "Stora rummet", Office: "Stockholm", Capacity: 12, Image: "r1.jpg", Description: "Projektor och whiteboard", IsAvailable: true},
			{ID: "r2", Name: "Lilla rummet", Office: "Stockholm", Capacity: 4, Image: "r2.jpg", IsAvailable: false},
			{ID: "r3", Name: "Havsutsikten", Office: "Göteborg", Capacity: 8, Image: "r3.jpg", IsAvailable: true},
		},
		Bookings: []persistence.Booking{
			{ID: "b1", RoomID: "r1", Title: "Planering", Date: day(3, 10), EndTime: day(3, 11), BookedBy: "Anna Lind"},
			{ID: "b2", RoomID: "r1", Title: "Frukostmöte", Date: day(0, 8), EndTime: day(0, 9), BookedBy: "Maria Ek"},
			{ID: "b3", RoomID: "r3", Title: "Kundmöte", Date: day(4, 13), EndTime: day(4, 14).Add(30 * time.Minute), BookedBy: "Erik Berg"},
		},
	}
	for _, opt := range opts {
		opt(&snapshot)
	}
	return snapshot
}

// Catalog converts the fixture snapshot into an application catalog.
func Catalog(opts ...SnapshotOption) *application.Catalog {
	return bootstrap.CatalogFromSnapshot(Snapshot(opts...))
}

// StaticSource serves a fixed snapshot as a persistence.SnapshotSource.
type StaticSource struct {
	Snapshot persistence.Snapshot
	Err      error
	Calls    int
}

// LoadSnapshot returns the configured snapshot or error.
func (s *StaticSource) LoadSnapshot(_ context.Context) (persistence.Snapshot, error) {
	s.Calls++
	if s.Err != nil {
		return persistence.Snapshot{}, s.Err
	}
	return s.Snapshot, nil
}

func day(offset, hour int) time.Time {
	ref := ReferenceTime()
	return time.Date(ref.Year(), ref.Month(), ref.Day()+offset, hour, 0, 0, 0, time.UTC)
}

func ptr(value string) *string { return &value }
