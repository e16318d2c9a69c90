package persistence

import (
	"errors"
	"fmt"
)

// Snapshot is the full CRM data set loaded at startup.
type Snapshot struct {
	Users      []User        `yaml:"users"`
	Clients    []Client      `yaml:"clients"`
	Properties []Property    `yaml:"properties"`
	Activities []Activity    `yaml:"activities"`
	Offers     []Offer       `yaml:"offers"`
	Rooms      []MeetingRoom `yaml:"meetingRooms"`
	Bookings   []Booking     `yaml:"bookings"`
}

// DanglingReference names a foreign key whose target is missing.
type DanglingReference struct {
	Collection string
	ID         string
	Field      string
	Target     string
}

func (d DanglingReference) String() string {
	return fmt.Sprintf("%s %s: %s references missing %s", d.Collection, d.ID, d.Field, d.Target)
}

var (
	clientTypes      = set("buyer", "seller", "both")
	propertyTypes    = set("apartment", "house", "villa", "townhouse", "cottage")
	propertyStatuses = set("available", "pending", "sold")
	activityTypes    = set("viewing", "meeting", "call", "appointment", "task")
	activityStatuses = set("scheduled", "completed")
	offerStatuses    = set("submitted", "negotiating", "accepted", "rejected", "withdrawn")
)

// Validate checks ids and enumerated values. Dangling references are allowed
// and reported separately by DanglingReferences.
func (s Snapshot) Validate() error {
	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	checkIDs := func(collection string, ids []string) {
		seen := make(map[string]struct{}, len(ids))
		for i, id := range ids {
			if id == "" {
				report("%s[%d]: id is required", collection, i)
				continue
			}
			if _, dup := seen[id]; dup {
				report("%s: duplicate id %q", collection, id)
			}
			seen[id] = struct{}{}
		}
	}
	checkIDs("users", idsOf(s.Users, func(u User) string { return u.ID }))
	checkIDs("clients", idsOf(s.Clients, func(c Client) string { return c.ID }))
	checkIDs("properties", idsOf(s.Properties, func(p Property) string { return p.ID }))
	checkIDs("activities", idsOf(s.Activities, func(a Activity) string { return a.ID }))
	checkIDs("offers", idsOf(s.Offers, func(o Offer) string { return o.ID }))
	checkIDs("meetingRooms", idsOf(s.Rooms, func(r MeetingRoom) string { return r.ID }))
	checkIDs("bookings", idsOf(s.Bookings, func(b Booking) string { return b.ID }))

	for _, c := range s.Clients {
		if _, ok := clientTypes[c.Type]; !ok {
			report("clients %s: unknown type %q", c.ID, c.Type)
		}
	}
	for _, p := range s.Properties {
		if _, ok := propertyTypes[p.Type]; !ok {
			report("properties %s: unknown type %q", p.ID, p.Type)
		}
		if _, ok := propertyStatuses[p.Status]; !ok {
			report("properties %s: unknown status %q", p.ID, p.Status)
		}
		if p.Price < 0 {
			report("properties %s: negative price", p.ID)
		}
	}
	for _, a := range s.Activities {
		if _, ok := activityTypes[a.Type]; !ok {
			report("activities %s: unknown type %q", a.ID, a.Type)
		}
		if _, ok := activityStatuses[a.Status]; !ok {
			report("activities %s: unknown status %q", a.ID, a.Status)
		}
	}
	for _, o := range s.Offers {
		if _, ok := offerStatuses[o.Status]; !ok {
			report("offers %s: unknown status %q", o.ID, o.Status)
		}
	}
	for _, b := range s.Bookings {
		if !b.EndTime.After(b.Date) {
			report("bookings %s: end must be after start", b.ID)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSnapshot, errors.Join(problems...))
}

// DanglingReferences lists every foreign key whose target id is absent.
func (s Snapshot) DanglingReferences() []DanglingReference {
	users := set(idsOf(s.Users, func(u User) string { return u.ID })...)
	clients := set(idsOf(s.Clients, func(c Client) string { return c.ID })...)
	properties := set(idsOf(s.Properties, func(p Property) string { return p.ID })...)
	rooms := set(idsOf(s.Rooms, func(r MeetingRoom) string { return r.ID })...)

	var dangling []DanglingReference
	check := func(collection, id, field, target string, known map[string]struct{}) {
		if _, ok := known[target]; !ok {
			dangling = append(dangling, DanglingReference{Collection: collection, ID: id, Field: field, Target: target})
		}
	}

	for _, p := range s.Properties {
		check("properties", p.ID, "agentId", p.AgentID, users)
		check("properties", p.ID, "ownerId", p.OwnerID, clients)
		if p.BuyerID != nil {
			check("properties", p.ID, "buyerId", *p.BuyerID, clients)
		}
	}
	for _, a := range s.Activities {
		if a.PropertyID != nil {
			check("activities", a.ID, "propertyId", *a.PropertyID, properties)
		}
		if a.ClientID != nil {
			check("activities", a.ID, "clientId", *a.ClientID, clients)
		}
	}
	for _, o := range s.Offers {
		check("offers", o.ID, "propertyId", o.PropertyID, properties)
		check("offers", o.ID, "buyerId", o.BuyerID, clients)
	}
	for _, b := range s.Bookings {
		check("bookings", b.ID, "roomId", b.RoomID, rooms)
	}
	return dangling
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func set(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
