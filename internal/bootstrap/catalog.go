// Package bootstrap resolves the snapshot a process serves and turns it into
// the application catalog.
package bootstrap

import (
	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/persistence"
)

// CatalogFromSnapshot converts persisted records into an immutable catalog.
func CatalogFromSnapshot(snapshot persistence.Snapshot) *application.Catalog {
	return application.NewCatalog(application.CatalogData{
		Users:      convert(snapshot.Users, toApplicationUser),
		Clients:    convert(snapshot.Clients, toApplicationClient),
		Properties: convert(snapshot.Properties, toApplicationProperty),
		Activities: convert(snapshot.Activities, toApplicationActivity),
		Offers:     convert(snapshot.Offers, toApplicationOffer),
		Rooms:      convert(snapshot.Rooms, toApplicationRoom),
		Bookings:   convert(snapshot.Bookings, toApplicationBooking),
	})
}

func convert[P, A any](models []P, fn func(P) A) []A {
	out := make([]A, 0, len(models))
	for _, model := range models {
		out = append(out, fn(model))
	}
	return out
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Avatar:    model.Avatar,
		Workrole:  model.Workrole,
		Office:    model.Office,
		Email:     model.Email,
		Phone:     model.Phone,
	}
}

func toApplicationClient(model persistence.Client) application.Client {
	return application.Client{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Email:     model.Email,
		Phone:     model.Phone,
		Type:      application.ClientType(model.Type),
	}
}

func toApplicationProperty(model persistence.Property) application.Property {
	return application.Property{
		ID:          model.ID,
		Address:     model.Address,
		City:        model.City,
		PostalCode:  model.PostalCode,
		Price:       model.Price,
		Size:        model.Size,
		Rooms:       model.Rooms,
		Type:        application.PropertyType(model.Type),
		Status:      application.PropertyStatus(model.Status),
		Images:      append([]string(nil), model.Images...),
		AgentID:     model.AgentID,
		OwnerID:     model.OwnerID,
		BuyerID:     cloneString(model.BuyerID),
		ListedAt:    model.ListedAt,
		CreatedAt:   model.CreatedAt,
		Description: model.Description,
	}
}

func toApplicationActivity(model persistence.Activity) application.Activity {
	return application.Activity{
		ID:          model.ID,
		Title:       model.Title,
		Type:        application.ActivityType(model.Type),
		Date:        model.Date,
		Status:      application.ActivityStatus(model.Status),
		PropertyID:  cloneString(model.PropertyID),
		ClientID:    cloneString(model.ClientID),
		Contact:     model.Contact,
		Description: model.Description,
		Completed:   model.Completed,
	}
}

func toApplicationOffer(model persistence.Offer) application.Offer {
	return application.Offer{
		ID:         model.ID,
		PropertyID: model.PropertyID,
		BuyerID:    model.BuyerID,
		Amount:     model.Amount,
		Date:       model.Date,
		Status:     application.OfferStatus(model.Status),
	}
}

func toApplicationRoom(model persistence.MeetingRoom) application.MeetingRoom {
	return application.MeetingRoom{
		ID:          model.ID,
		Name:        model.Name,
		Office:      model.Office,
		Capacity:    model.Capacity,
		Image:       model.Image,
		Description: model.Description,
		IsAvailable: model.IsAvailable,
	}
}

func toApplicationBooking(model persistence.Booking) application.Booking {
	return application.Booking{
		ID:       model.ID,
		RoomID:   model.RoomID,
		Title:    model.Title,
		Date:     model.Date,
		EndTime:  model.EndTime,
		BookedBy: model.BookedBy,
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
