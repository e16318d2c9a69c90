package http

import (
	"time"

	"github.com/example/realestate-crm/internal/application"
	"github.com/example/realestate-crm/internal/format"
)

// presenter turns application values into response DTOs. Raw values travel
// next to their display strings so clients can sort on one and show the other.
type presenter struct {
	format *format.Formatter
}

func newPresenter(formatter *format.Formatter) presenter {
	if formatter == nil {
		formatter = format.New(nil)
	}
	return presenter{format: formatter}
}

type colleagueDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Avatar    string `json:"avatar"`
	Workrole  string `json:"workrole"`
	Office    string `json:"office"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (p presenter) colleague(u application.User) colleagueDTO {
	return colleagueDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Avatar:    u.Avatar,
		Workrole:  u.Workrole,
		Office:    u.Office,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

func (p presenter) colleagues(users []application.User) []colleagueDTO {
	out := make([]colleagueDTO, 0, len(users))
	for _, u := range users {
		out = append(out, p.colleague(u))
	}
	return out
}

type clientDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
}

func (p presenter) client(c application.Client) clientDTO {
	return clientDTO{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Type:      string(c.Type),
	}
}

func (p presenter) clients(clients []application.Client) []clientDTO {
	out := make([]clientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, p.client(c))
	}
	return out
}

func (p presenter) optionalClient(c *application.Client) *clientDTO {
	if c == nil {
		return nil
	}
	dto := p.client(*c)
	return &dto
}

type clientViewDTO struct {
	clientDTO
	InterestLevel            int     `json:"interest_level"`
	LastInteraction          *string `json:"last_interaction"`
	LastInteractionFormatted string  `json:"last_interaction_formatted"`
}

func (p presenter) clientView(view application.ClientView) clientViewDTO {
	dto := clientViewDTO{clientDTO: p.client(view.Client), InterestLevel: view.InterestLevel}
	if view.LastInteraction != nil {
		raw := view.LastInteraction.UTC().Format(time.RFC3339)
		dto.LastInteraction = &raw
		dto.LastInteractionFormatted = p.format.Date(*view.LastInteraction)
	}
	return dto
}

type propertyDTO struct {
	ID             string   `json:"id"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postal_code"`
	Price          int64    `json:"price"`
	PriceFormatted string   `json:"price_formatted"`
	Size           int      `json:"size"`
	Rooms          int      `json:"rooms"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Images         []string `json:"images"`
	AgentID        string   `json:"agent_id"`
	OwnerID        string   `json:"owner_id"`
	BuyerID        *string  `json:"buyer_id"`
	ListedAt       string   `json:"listed_at"`
	CreatedAt      string   `json:"created_at"`
	Description    string   `json:"description"`
}

func (p presenter) property(prop application.Property) propertyDTO {
	images := prop.Images
	if images == nil {
		images = []string{}
	}
	return propertyDTO{
		ID:             prop.ID,
		Address:        prop.Address,
		City:           prop.City,
		PostalCode:     prop.PostalCode,
		Price:          prop.Price,
		PriceFormatted: p.format.SEK(prop.Price),
		Size:           prop.Size,
		Rooms:          prop.Rooms,
		Type:           string(prop.Type),
		Status:         string(prop.Status),
		Images:         images,
		AgentID:        prop.AgentID,
		OwnerID:        prop.OwnerID,
		BuyerID:        prop.BuyerID,
		ListedAt:       p.format.Date(prop.ListedAt),
		CreatedAt:      p.format.Date(prop.CreatedAt),
		Description:    prop.Description,
	}
}

func (p presenter) properties(props []application.Property) []propertyDTO {
	out := make([]propertyDTO, 0, len(props))
	for _, prop := range props {
		out = append(out, p.property(prop))
	}
	return out
}

type activityDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	Time        string  `json:"time"`
	PropertyID  *string `json:"property_id"`
	ClientID    *string `json:"client_id"`
	Contact     string  `json:"contact"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
}

func (p presenter) activity(a application.Activity) activityDTO {
	return activityDTO{
		ID:          a.ID,
		Title:       a.Title,
		Type:        string(a.Type),
		Status:      string(a.Status),
		Date:        a.Date.UTC().Format(time.RFC3339),
		Day:         p.format.Date(a.Date),
		Time:        p.format.Time(a.Date),
		PropertyID:  a.PropertyID,
		ClientID:    a.ClientID,
		Contact:     a.Contact,
		Description: a.Description,
		Completed:   a.Completed,
	}
}

func (p presenter) activities(activities []application.Activity) []activityDTO {
	out := make([]activityDTO, 0, len(activities))
	for _, a := range activities {
		out = append(out, p.activity(a))
	}
	return out
}

type offerDTO struct {
	ID              string `json:"id"`
	PropertyID      string `json:"property_id"`
	BuyerID         string `json:"buyer_id"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Date            string `json:"date"`
	Day             string `json:"day"`
	Status          string `json:"status"`
}

func (p presenter) offer(o application.Offer) offerDTO {
	return offerDTO{
		ID:              o.ID,
		PropertyID:      o.PropertyID,
		BuyerID:         o.BuyerID,
		Amount:          o.Amount,
		AmountFormatted: p.format.SEK(o.Amount),
		Date:            o.Date.UTC().Format(time.RFC3339),
		Day:             p.format.Date(o.Date),
		Status:          string(o.Status),
	}
}

func (p presenter) offers(offers []application.Offer) []offerDTO {
	out := make([]offerDTO, 0, len(offers))
	for _, o := range offers {
		out = append(out, p.offer(o))
	}
	return out
}

type roomDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Office      string `json:"office"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image"`
	Description string `json:"description"`
	IsAvailable bool   `json:"is_available"`
}

func (p presenter) room(r application.MeetingRoom) roomDTO {
	return roomDTO{
		ID:          r.ID,
		Name:        r.Name,
		Office:      r.Office,
		Capacity:    r.Capacity,
		Image:       r.Image,
		Description: r.Description,
		IsAvailable: r.IsAvailable,
	}
}

func (p presenter) rooms(rooms []application.MeetingRoom) []roomDTO {
	out := make([]roomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, p.room(r))
	}
	return out
}

type bookingDTO struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	BookedBy  string `json:"booked_by"`
}

func (p presenter) booking(b application.Booking) bookingDTO {
	return bookingDTO{
		ID:        b.ID,
		RoomID:    b.RoomID,
		Title:     b.Title,
		Start:     b.Date.UTC().Format(time.RFC3339),
		End:       b.EndTime.UTC().Format(time.RFC3339),
		Day:       p.format.Date(b.Date),
		StartTime: p.format.Time(b.Date),
		EndTime:   p.format.Time(b.EndTime),
		BookedBy:  b.BookedBy,
	}
}

func (p presenter) bookings(bookings []application.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, p.booking(b))
	}
	return out
}

type statusCountsDTO struct {
	Available int `json:"available"`
	Pending   int `json:"pending"`
	Sold      int `json:"sold"`
	Total     int `json:"total"`
}

func toStatusCountsDTO(c application.StatusCounts) statusCountsDTO {
	return statusCountsDTO{Available: c.Available, Pending: c.Pending, Sold: c.Sold, Total: c.Total}
}

type calendarEventDTO struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Title      string  `json:"title"`
	Type       string  `json:"type"`
	Start      string  `json:"start"`
	End        *string `json:"end"`
	Day        string  `json:"day"`
	Time       string  `json:"time"`
	PropertyID *string `json:"property_id,omitempty"`
	ClientID   *string `json:"client_id,omitempty"`
	RoomID     *string `json:"room_id,omitempty"`
	Contact    string  `json:"contact,omitempty"`
	Completed  bool    `json:"completed"`
}

func (p presenter) calendarEvent(e application.CalendarEvent) calendarEventDTO {
	dto := calendarEventDTO{
		ID:         e.ID,
		Kind:       string(e.Kind),
		Title:      e.Title,
		Type:       e.Type,
		Start:      e.Start.UTC().Format(time.RFC3339),
		Day:        p.format.Date(e.Start),
		Time:       p.format.Time(e.Start),
		PropertyID: e.PropertyID,
		ClientID:   e.ClientID,
		RoomID:     e.RoomID,
		Contact:    e.Contact,
		Completed:  e.Completed,
	}
	if e.End != nil {
		end := e.End.UTC().Format(time.RFC3339)
		dto.End = &end
	}
	return dto
}
