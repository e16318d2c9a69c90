package application

import "time"

var sampleNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func sampleClock() time.Time { return sampleNow }

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func strPtr(value string) *string { return &value }

// sampleCatalog holds a small office: three agents, four clients, five
// listings (one with dangling agent and owner references), activities on
// both sides of sampleNow, offers and room bookings.
func sampleCatalog() *Catalog {
	return NewCatalog(CatalogData{
		Users: []User{
			{ID: "u1", FirstName: "Anna", LastName: "Lind", Workrole: "Mäklare", Office: "Stockholm", Email: "anna.lind@crm.se", Phone: "08-111 11"},
			{ID: "u2", FirstName: "Erik", LastName: "Berg", Workrole: "Assistent", Office: "Göteborg", Email: "erik.berg@crm.se", Phone: "031-222 22"},
			{ID: "u3", FirstName: "Maria", LastName: "Ek", Workrole: "Mäklare", Office: "Stockholm", Email: "maria.ek@crm.se", Phone: "08-333 33"},
		},
		Clients: []Client{
			{ID: "c1", FirstName: "Karin", LastName: "Svensson", Email: "karin.svensson@example.se", Phone: "070-111 11 11", Type: ClientTypeBuyer},
			{ID: "c2", FirstName: "Lars", LastName: "Johansson", Email: "lars.johansson@example.se", Phone: "070-222 22 22", Type: ClientTypeSeller},
			{ID: "c3", FirstName: "Sofia", LastName: "Nilsson", Email: "sofia.nilsson@example.se", Phone: "070-333 33 33", Type: ClientTypeBoth},
			{ID: "c4", FirstName: "Olof", LastName: "Karlsson", Email: "olof.karlsson@example.se", Phone: "070-444 44 44", Type: ClientTypeBuyer},
		},
		Properties: []Property{
			{ID: "p1", Address: "Storgatan 1", City: "Stockholm", Price: 4_950_000, Size: 72, Rooms: 3, Type: PropertyTypeApartment, Status: PropertyStatusAvailable, Images: []string{"p1.jpg"}, AgentID: "u1", OwnerID: "c2", ListedAt: at(time.February, 1, 9, 0), Description: "Ljus lägenhet med balkong"},
			{ID: "p2", Address: "Sjövägen 12", City: "Göteborg", Price: 8_200_000, Size: 180, Rooms: 6, Type: PropertyTypeVilla, Status: PropertyStatusSold, AgentID: "u1", OwnerID: "c3", BuyerID: strPtr("c1"), ListedAt: at(time.January, 10, 9, 0), Description: "Villa vid havet"},
			{ID: "p3", Address: "Ekvägen 5", City: "Uppsala", Price: 3_100_000, Size: 120, Rooms: 5, Type: PropertyTypeHouse, Status: PropertyStatusPending, AgentID: "u3", OwnerID: "c2", ListedAt: at(time.March, 1, 9, 0), Description: "Renoverat hus"},
			{ID: "p4", Address: "Parkgatan 8", City: "Stockholm", Price: 5_500_000, Size: 110, Rooms: 4, Type: PropertyTypeTownhouse, Status: PropertyStatusAvailable, AgentID: "u1", OwnerID: "c3", ListedAt: at(time.February, 20, 9, 0), Description: "Radhus nära park"},
			{ID: "p5", Address: "Strandvägen 3", City: "Malmö", Price: 1_900_000, Size: 55, Rooms: 2, Type: PropertyTypeCottage, Status: PropertyStatusAvailable, AgentID: "u-missing", OwnerID: "c-missing", ListedAt: at(time.January, 5, 9, 0), Description: "Stuga"},
		},
		Activities: []Activity{
			{ID: "a1", Title: "Visning Storgatan", Type: ActivityTypeViewing, Date: at(time.March, 18, 10, 0), Status: ActivityStatusScheduled, PropertyID: strPtr("p1"), ClientID: strPtr("c1")},
			{ID: "a2", Title: "Visning Storgatan", Type: ActivityTypeViewing, Date: at(time.March, 16, 14, 0), Status: ActivityStatusScheduled, PropertyID: strPtr("p1"), ClientID: strPtr("c4")},
			{ID: "a3", Title: "Möte om bud", Type: ActivityTypeMeeting, Date: at(time.March, 10, 9, 0), Status: ActivityStatusCompleted, PropertyID: strPtr("p1"), ClientID: strPtr("c1"), Completed: true},
			{ID: "a4", Title: "Uppföljning", Type: ActivityTypeCall, Date: at(time.March, 12, 11, 0), Status: ActivityStatusCompleted, ClientID: strPtr("c3"), Completed: true},
			{ID: "a5", Title: "Visning Sjövägen", Type: ActivityTypeViewing, Date: at(time.March, 1, 13, 0), Status: ActivityStatusCompleted, PropertyID: strPtr("p2"), ClientID: strPtr("c1"), Completed: true},
			{ID: "a6", Title: "Beställ fotograf", Type: ActivityTypeTask, Date: at(time.March, 20, 8, 0), Status: ActivityStatusScheduled},
		},
		Offers: []Offer{
			{ID: "o1", PropertyID: "p2", BuyerID: "c1", Amount: 8_000_000, Date: at(time.February, 15, 10, 0), Status: OfferStatusAccepted},
			{ID: "o2", PropertyID: "p1", BuyerID: "c4", Amount: 4_800_000, Date: at(time.March, 11, 10, 0), Status: OfferStatusSubmitted},
			{ID: "o3", PropertyID: "p1", BuyerID: "c1", Amount: 4_900_000, Date: at(time.March, 13, 10, 0), Status: OfferStatusNegotiating},
		},
		Rooms: []MeetingRoom{
			{ID: "r1", Name: "Stora rummet", Office: "Stockholm", Capacity: 12, IsAvailable: true},
			{ID: "r2", Name: "Lilla rummet", Office: "Stockholm", Capacity: 4, IsAvailable: false},
			{ID: "r3", Name: "Havsutsikten", Office: "Göteborg", Capacity: 8, IsAvailable: true},
		},
		Bookings: []Booking{
			{ID: "b1", RoomID: "r1", Title: "Planering", Date: at(time.March, 18, 10, 0), EndTime: at(time.March, 18, 11, 0), BookedBy: "Anna Lind"},
			{ID: "b2", RoomID: "r1", Title: "Frukostmöte", Date: at(time.March, 15, 8, 0), EndTime: at(time.March, 15, 9, 0), BookedBy: "Maria Ek"},
			{ID: "b3", RoomID: "r3", Title: "Kundmöte", Date: at(time.March, 19, 13, 0), EndTime: at(time.March, 19, 14, 30), BookedBy: "Erik Berg"},
		},
	})
}

// fixedMetrics returns constant values so client views are deterministic.
type fixedMetrics struct {
	level int
	last  time.Time
}

func (m fixedMetrics) InterestLevel(Client) int { return m.level }

func (m fixedMetrics) LastInteraction(Client) (time.Time, bool) {
	return m.last, !m.last.IsZero()
}

func ids[T any](items []T, idOf func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = idOf(item)
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
