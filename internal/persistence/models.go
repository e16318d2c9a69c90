package persistence

import "time"

// User represents an office employee in the CRM seed.
type User struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Avatar    string `yaml:"avatar"`
	Workrole  string `yaml:"workrole"`
	Office    string `yaml:"office"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
}

// Client represents a buyer or seller record.
type Client struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Type      string `yaml:"type"`
}

// Property represents a listing.
type Property struct {
	ID          string    `yaml:"id"`
	Address     string    `yaml:"address"`
	City        string    `yaml:"city"`
	PostalCode  string    `yaml:"postalCode"`
	Price       int64     `yaml:"price"`
	Size        int       `yaml:"size"`
	Rooms       int       `yaml:"rooms"`
	Type        string    `yaml:"type"`
	Status      string    `yaml:"status"`
	Images      []string  `yaml:"images"`
	AgentID     string    `yaml:"agentId"`
	OwnerID     string    `yaml:"ownerId"`
	BuyerID     *string   `yaml:"buyerId"`
	ListedAt    time.Time `yaml:"listedAt"`
	CreatedAt   time.Time `yaml:"createdAt"`
	Description string    `yaml:"description"`
}

// Activity represents a calendar entry.
type Activity struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Type        string    `yaml:"type"`
	Date        time.Time `yaml:"date"`
	Status      string    `yaml:"status"`
	PropertyID  *string   `yaml:"propertyId"`
	ClientID    *string   `yaml:"clientId"`
	Contact     string    `yaml:"contact"`
	Description string    `yaml:"description"`
	Completed   bool      `yaml:"completed"`
}

// Offer represents a bid on a property.
type Offer struct {
	ID         string    `yaml:"id"`
	PropertyID string    `yaml:"propertyId"`
	BuyerID    string    `yaml:"buyerId"`
	Amount     int64     `yaml:"amount"`
	Date       time.Time `yaml:"date"`
	Status     string    `yaml:"status"`
}

// MeetingRoom represents a bookable office room.
type MeetingRoom struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Office      string `yaml:"office"`
	Capacity    int    `yaml:"capacity"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
	IsAvailable bool   `yaml:"isAvailable"`
}

// Booking represents a meeting room reservation.
type Booking struct {
	ID       string    `yaml:"id"`
	RoomID   string    `yaml:"roomId"`
	Title    string    `yaml:"title"`
	Date     time.Time `yaml:"date"`
	EndTime  time.Time `yaml:"endTime"`
	BookedBy string    `yaml:"bookedBy"`
}
