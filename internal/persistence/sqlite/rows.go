package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/realestate-crm/internal/persistence"
)

const (
	insertUserSQL = `INSERT INTO users (seq, id, first_name, last_name, avatar, workrole, office, email, phone)
		VALUES (:seq, :id, :first_name, :last_name, :avatar, :workrole, :office, :email, :phone)`
	insertClientSQL = `INSERT INTO clients (seq, id, first_name, last_name, email, phone, type)
		VALUES (:seq, :id, :first_name, :last_name, :email, :phone, :type)`
	insertPropertySQL = `INSERT INTO properties (seq, id, address, city, postal_code, price, size, rooms, type, status,
		images_json, agent_id, owner_id, buyer_id, listed_at, created_at, description)
		VALUES (:seq, :id, :address, :city, :postal_code, :price, :size, :rooms, :type, :status,
		:images_json, :agent_id, :owner_id, :buyer_id, :listed_at, :created_at, :description)`
	insertActivitySQL = `INSERT INTO activities (seq, id, title, type, date, status, property_id, client_id, contact, description, completed)
		VALUES (:seq, :id, :title, :type, :date, :status, :property_id, :client_id, :contact, :description, :completed)`
	insertOfferSQL = `INSERT INTO offers (seq, id, property_id, buyer_id, amount, date, status)
		VALUES (:seq, :id, :property_id, :buyer_id, :amount, :date, :status)`
	insertRoomSQL = `INSERT INTO meeting_rooms (seq, id, name, office, capacity, image, description, is_available)
		VALUES (:seq, :id, :name, :office, :capacity, :image, :description, :is_available)`
	insertBookingSQL = `INSERT INTO bookings (seq, id, room_id, title, date, end_time, booked_by)
		VALUES (:seq, :id, :room_id, :title, :date, :end_time, :booked_by)`
)

type userRow struct {
	Seq       int    `db:"seq"`
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Avatar    string `db:"avatar"`
	Workrole  string `db:"workrole"`
	Office    string `db:"office"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
}

func toUserRow(seq int, u persistence.User) (userRow, error) {
	return userRow{
		Seq: seq, ID: u.ID, FirstName: u.FirstName, LastName: u.LastName,
		Avatar: u.Avatar, Workrole: u.Workrole, Office: u.Office, Email: u.Email, Phone: u.Phone,
	}, nil
}

func (r userRow) model() (persistence.User, error) {
	return persistence.User{
		ID: r.ID, FirstName: r.FirstName, LastName: r.LastName,
		Avatar: r.Avatar, Workrole: r.Workrole, Office: r.Office, Email: r.Email, Phone: r.Phone,
	}, nil
}

type clientRow struct {
	Seq       int    `db:"seq"`
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Type      string `db:"type"`
}

func toClientRow(seq int, c persistence.Client) (clientRow, error) {
	return clientRow{
		Seq: seq, ID: c.ID, FirstName: c.FirstName, LastName: c.LastName,
		Email: c.Email, Phone: c.Phone, Type: c.Type,
	}, nil
}

func (r clientRow) model() (persistence.Client, error) {
	return persistence.Client{
		ID: r.ID, FirstName: r.FirstName, LastName: r.LastName,
		Email: r.Email, Phone: r.Phone, Type: r.Type,
	}, nil
}

type propertyRow struct {
	Seq         int            `db:"seq"`
	ID          string         `db:"id"`
	Address     string         `db:"address"`
	City        string         `db:"city"`
	PostalCode  string         `db:"postal_code"`
	Price       int64          `db:"price"`
	Size        int            `db:"size"`
	Rooms       int            `db:"rooms"`
	Type        string         `db:"type"`
	Status      string         `db:"status"`
	ImagesJSON  string         `db:"images_json"`
	AgentID     string         `db:"agent_id"`
	OwnerID     string         `db:"owner_id"`
	BuyerID     sql.NullString `db:"buyer_id"`
	ListedAt    string         `db:"listed_at"`
	CreatedAt   string         `db:"created_at"`
	Description string         `db:"description"`
}

func toPropertyRow(seq int, p persistence.Property) (propertyRow, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return propertyRow{}, fmt.Errorf("encode images of %s: %w", p.ID, err)
	}
	return propertyRow{
		Seq: seq, ID: p.ID, Address: p.Address, City: p.City, PostalCode: p.PostalCode,
		Price: p.Price, Size: p.Size, Rooms: p.Rooms, Type: p.Type, Status: p.Status,
		ImagesJSON: string(encoded), AgentID: p.AgentID, OwnerID: p.OwnerID, BuyerID: nullString(p.BuyerID),
		ListedAt: formatTime(p.ListedAt), CreatedAt: formatTime(p.CreatedAt), Description: p.Description,
	}, nil
}

func (r propertyRow) model() (persistence.Property, error) {
	var images []string
	if err := json.Unmarshal([]byte(r.ImagesJSON), &images); err != nil {
		return persistence.Property{}, fmt.Errorf("decode images of %s: %w", r.ID, err)
	}
	listedAt, err := parseTime(r.ListedAt)
	if err != nil {
		return persistence.Property{}, err
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return persistence.Property{}, err
	}
	return persistence.Property{
		ID: r.ID, Address: r.Address, City: r.City, PostalCode: r.PostalCode,
		Price: r.Price, Size: r.Size, Rooms: r.Rooms, Type: r.Type, Status: r.Status,
		Images: images, AgentID: r.AgentID, OwnerID: r.OwnerID, BuyerID: stringPtr(r.BuyerID),
		ListedAt: listedAt, CreatedAt: createdAt, Description: r.Description,
	}, nil
}

type activityRow struct {
	Seq         int            `db:"seq"`
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Type        string         `db:"type"`
	Date        string         `db:"date"`
	Status      string         `db:"status"`
	PropertyID  sql.NullString `db:"property_id"`
	ClientID    sql.NullString `db:"client_id"`
	Contact     string         `db:"contact"`
	Description string         `db:"description"`
	Completed   bool           `db:"completed"`
}

func toActivityRow(seq int, a persistence.Activity) (activityRow, error) {
	return activityRow{
		Seq: seq, ID: a.ID, Title: a.Title, Type: a.Type, Date: formatTime(a.Date), Status: a.Status,
		PropertyID: nullString(a.PropertyID), ClientID: nullString(a.ClientID),
		Contact: a.Contact, Description: a.Description, Completed: a.Completed,
	}, nil
}

func (r activityRow) model() (persistence.Activity, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return persistence.Activity{}, err
	}
	return persistence.Activity{
		ID: r.ID, Title: r.Title, Type: r.Type, Date: date, Status: r.Status,
		PropertyID: stringPtr(r.PropertyID), ClientID: stringPtr(r.ClientID),
		Contact: r.Contact, Description: r.Description, Completed: r.Completed,
	}, nil
}

type offerRow struct {
	Seq        int    `db:"seq"`
	ID         string `db:"id"`
	PropertyID string `db:"property_id"`
	BuyerID    string `db:"buyer_id"`
	Amount     int64  `db:"amount"`
	Date       string `db:"date"`
	Status     string `db:"status"`
}

func toOfferRow(seq int, o persistence.Offer) (offerRow, error) {
	return offerRow{
		Seq: seq, ID: o.ID, PropertyID: o.PropertyID, BuyerID: o.BuyerID,
		Amount: o.Amount, Date: formatTime(o.Date), Status: o.Status,
	}, nil
}

func (r offerRow) model() (persistence.Offer, error) {
	date, err := parseTime(r.Date)
	if err != nil {
		return persistence.Offer{}, err
	}
	return persistence.Offer{
		ID: r.ID, PropertyID: r.PropertyID, BuyerID: r.BuyerID,
		Amount: r.Amount, Date: date, Status: r.Status,
	}, nil
}

type roomRow struct {
	Seq         int    `db:"seq"`
	ID          string `db:"id"`
	Name        string `db:"name"`
	Office      string `db:"office"`
	Capacity    int    `db:"capacity"`
	Image       string `db:"image"`
	Description string `db:"description"`
	IsAvailable bool   `db:"is_available"`
}

func toRoomRow(seq int, r persistence.MeetingRoom) (roomRow, error) {
	return roomRow{
		Seq: seq, ID: r.ID, Name: r.Name, Office: r.Office, Capacity: r.Capacity,
		Image: r.Image, Description: r.Description, IsAvailable: r.IsAvailable,
	}, nil
}

func (r roomRow) model() (persistence.MeetingRoom, error) {
	return persistence.MeetingRoom{
		ID: r.ID, Name: r.Name, Office: r.Office, Capacity: r.Capacity,
		Image: r.Image, Description: r.Description, IsAvailable: r.IsAvailable,
	}, nil
}

type bookingRow struct {
	Seq      int    `db:"seq"`
	ID       string `db:"id"`
	RoomID   string `db:"room_id"`
	Title    string `db:"title"`
	Date     string `db:"date"`
	EndTime  string `db:"end_time"`
	BookedBy string `db:"booked_by"`
}

func toBookingRow(seq int, b persistence.Booking) (bookingRow, error) {
	return bookingRow{
		Seq: seq, ID: b.ID, RoomID: b.RoomID, Title: b.Title,
		Date: formatTime(b.Date), EndTime: formatTime(b.EndTime), BookedBy: b.BookedBy,
	}, nil
}

func (r bookingRow) model() (persistence.Booking, error) {
	start, err := parseTime(r.Date)
	if err != nil {
		return persistence.Booking{}, err
	}
	end, err := parseTime(r.EndTime)
	if err != nil {
		return persistence.Booking{}, err
	}
	return persistence.Booking{
		ID: r.ID, RoomID: r.RoomID, Title: r.Title, Date: start, EndTime: end, BookedBy: r.BookedBy,
	}, nil
}
