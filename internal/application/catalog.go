package application

import "slices"

// CatalogData is the raw snapshot handed to NewCatalog.
type CatalogData struct {
	Users      []User
	Clients    []Client
	Properties []Property
	Activities []Activity
	Offers     []Offer
	Rooms      []MeetingRoom
	Bookings   []Booking
}

// Catalog is the read-only data context every service queries. It is built
// once at startup and injected; it never changes afterwards. Accessors return
// copies, so callers cannot mutate the catalog through returned values.
type Catalog struct {
	data CatalogData
}

// NewCatalog deep-copies data into an immutable catalog. Collection order is
// preserved.
func NewCatalog(data CatalogData) *Catalog {
	return &Catalog{data: cloneCatalogData(data)}
}

// Users returns all office employees.
func (c *Catalog) Users() []User {
	if c == nil {
		return nil
	}
	return slices.Clone(c.data.Users)
}

// Clients returns all clients.
func (c *Catalog) Clients() []Client {
	if c == nil {
		return nil
	}
	return slices.Clone(c.data.Clients)
}

// Properties returns all listings.
func (c *Catalog) Properties() []Property {
	if c == nil {
		return nil
	}
	return cloneProperties(c.data.Properties)
}

// Activities returns all calendar activities.
func (c *Catalog) Activities() []Activity {
	if c == nil {
		return nil
	}
	return cloneActivities(c.data.Activities)
}

// Offers returns all offers.
func (c *Catalog) Offers() []Offer {
	if c == nil {
		return nil
	}
	return slices.Clone(c.data.Offers)
}

// Rooms returns all meeting rooms.
func (c *Catalog) Rooms() []MeetingRoom {
	if c == nil {
		return nil
	}
	return slices.Clone(c.data.Rooms)
}

// Bookings returns all room bookings.
func (c *Catalog) Bookings() []Booking {
	if c == nil {
		return nil
	}
	return slices.Clone(c.data.Bookings)
}

func cloneCatalogData(data CatalogData) CatalogData {
	return CatalogData{
		Users:      slices.Clone(data.Users),
		Clients:    slices.Clone(data.Clients),
		Properties: cloneProperties(data.Properties),
		Activities: cloneActivities(data.Activities),
		Offers:     slices.Clone(data.Offers),
		Rooms:      slices.Clone(data.Rooms),
		Bookings:   slices.Clone(data.Bookings),
	}
}

func cloneProperties(in []Property) []Property {
	if in == nil {
		return nil
	}
	out := make([]Property, len(in))
	for i, p := range in {
		p.Images = slices.Clone(p.Images)
		p.BuyerID = cloneString(p.BuyerID)
		out[i] = p
	}
	return out
}

func cloneActivities(in []Activity) []Activity {
	if in == nil {
		return nil
	}
	out := make([]Activity, len(in))
	for i, a := range in {
		a.PropertyID = cloneString(a.PropertyID)
		a.ClientID = cloneString(a.ClientID)
		out[i] = a
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func userID(u User) string { return u.ID }
func clientID(c Client) string { return c.ID }
func propertyID(p Property) string { return p.ID }
func roomID(r MeetingRoom) string { return r.ID }
func activityClient(a Activity) *string { return a.ClientID }
func activityProperty(a Activity) *string { return a.PropertyID }
