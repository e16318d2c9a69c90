package application

import "time"

// ClientType classifies a client relationship.
type ClientType string

const (
	ClientTypeBuyer  ClientType = "buyer"
	ClientTypeSeller ClientType = "seller"
	ClientTypeBoth   ClientType = "both"
)

// PropertyType is the kind of dwelling.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeCottage   PropertyType = "cottage"
)

// PropertyStatus is the sales state of a listing.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusSold      PropertyStatus = "sold"
)

// ActivityType classifies calendar activities.
type ActivityType string

const (
	ActivityTypeViewing     ActivityType = "viewing"
	ActivityTypeMeeting     ActivityType = "meeting"
	ActivityTypeCall        ActivityType = "call"
	ActivityTypeAppointment ActivityType = "appointment"
	ActivityTypeTask        ActivityType = "task"
)

// ActivityStatus tracks whether an activity has happened.
type ActivityStatus string

const (
	ActivityStatusScheduled ActivityStatus = "scheduled"
	ActivityStatusCompleted ActivityStatus = "completed"
)

// OfferStatus is the negotiation state of a bid.
type OfferStatus string

const (
	OfferStatusSubmitted   OfferStatus = "submitted"
	OfferStatusNegotiating OfferStatus = "negotiating"
	OfferStatusAccepted    OfferStatus = "accepted"
	OfferStatusRejected    OfferStatus = "rejected"
	OfferStatusWithdrawn   OfferStatus = "withdrawn"
)

// User is an office employee. Agents are users referenced by properties.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Avatar    string
	Workrole  string
	Office    string
	Email     string
	Phone     string
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Client is a buyer and/or seller.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Type      ClientType
}

// FullName joins first and last name with a single space.
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Property is a listing. Price is whole kronor, Size is square metres.
type Property struct {
	ID          string
	Address     string
	City        string
	PostalCode  string
	Price       int64
	Size        int
	Rooms       int
	Type        PropertyType
	Status      PropertyStatus
	Images      []string
	AgentID     string
	OwnerID     string
	BuyerID     *string
	ListedAt    time.Time
	CreatedAt   time.Time
	Description string
}

// Activity is a calendar entry optionally tied to a property and a client.
type Activity struct {
	ID          string
	Title       string
	Type        ActivityType
	Date        time.Time
	Status      ActivityStatus
	PropertyID  *string
	ClientID    *string
	Contact     string
	Description string
	Completed   bool
}

// Offer is a bid on a property.
type Offer struct {
	ID         string
	PropertyID string
	BuyerID    string
	Amount     int64
	Date       time.Time
	Status     OfferStatus
}

// MeetingRoom is a bookable room in one of the offices.
type MeetingRoom struct {
	ID          string
	Name        string
	Office      string
	Capacity    int
	Image       string
	Description string
	IsAvailable bool
}

// Booking reserves a meeting room. Bookings are seeded, never derived from
// MeetingRoom.IsAvailable.
type Booking struct {
	ID       string
	RoomID   string
	Title    string
	Date     time.Time
	EndTime  time.Time
	BookedBy string
}

// StatusCounts tallies an agent's properties per status.
type StatusCounts struct {
	Available int
	Pending   int
	Sold      int
	Total     int
}

// ClientView is a client row enriched with derived metrics.
type ClientView struct {
	Client          Client
	InterestLevel   int
	LastInteraction *time.Time
}

// ClientListParams narrows the client list.
type ClientListParams struct {
	Query string
	Type  string
}

// ClientDetail joins a client with everything that references it.
type ClientDetail struct {
	View                ClientView
	Activities          []Activity
	OwnedProperties     []Property
	PurchasedProperties []Property
	Offers              []Offer
}

// PropertySort names a comparator for property listings.
type PropertySort string

const (
	PropertySortNone      PropertySort = ""
	PropertySortNewest    PropertySort = "newest"
	PropertySortPriceAsc  PropertySort = "price_asc"
	PropertySortPriceDesc PropertySort = "price_desc"
	PropertySortSizeDesc  PropertySort = "size_desc"
)

// PropertyListParams narrows the property list.
type PropertyListParams struct {
	Query  string
	Status string
	Sort   PropertySort
}

// PropertyDetail joins a property with its agent, parties, offers and activities.
type PropertyDetail struct {
	Property         Property
	Agent            *User
	Owner            *Client
	Buyer            *Client
	Offers           []Offer
	UpcomingViewings []Activity
	Activities       []Activity
}

// ColleagueListParams narrows the colleague directory.
type ColleagueListParams struct {
	Query  string
	Office string
}

// ColleagueDetail joins an agent with the properties they handle.
type ColleagueDetail struct {
	User       User
	Properties []Property
	Stats      StatusCounts
}

// RoomListParams narrows the meeting room list.
type RoomListParams struct {
	Office string
}

// RoomDetail joins a room with its bookings.
type RoomDetail struct {
	Room     MeetingRoom
	Bookings []Booking
}

// BookingDraft is an unsaved booking form.
type BookingDraft struct {
	RoomID string `validate:"required"`
	Title  string `validate:"required"`
	Date   string `validate:"required,datetime=2006-01-02"`
	Start  string `validate:"required"`
	End    string `validate:"required"`
}

// BookingDraftResult reports whether a draft may be submitted.
type BookingDraftResult struct {
	CanSubmit bool
	Start     *time.Time
	End       *time.Time
	Errors    *ValidationError
}

// SlotOption is one entry of the booking time selector.
type SlotOption struct {
	Label    string
	Disabled bool
}

// SlotSelection is the selector state after choosing a start time.
type SlotSelection struct {
	Starts     []string
	EndOptions []SlotOption
	End        string
}

// CalendarEventKind distinguishes the sources merged into the calendar.
type CalendarEventKind string

const (
	CalendarEventActivity CalendarEventKind = "activity"
	CalendarEventBooking  CalendarEventKind = "booking"
)

// CalendarEvent is an activity or a booking placed on the calendar.
type CalendarEvent struct {
	ID         string
	Kind       CalendarEventKind
	Title      string
	Type       string
	Start      time.Time
	End        *time.Time
	PropertyID *string
	ClientID   *string
	RoomID     *string
	Contact    string
	Completed  bool
}

// CalendarParams selects a half-open [From, To) window. Zero bounds are open.
type CalendarParams struct {
	From time.Time
	To   time.Time
	Type string
}

// GlobalSearchResult is the header search dropdown content.
type GlobalSearchResult struct {
	Query      string
	Clients    []Client
	Properties []Property
}

// DashboardSummary aggregates the landing page figures.
type DashboardSummary struct {
	Properties         StatusCounts
	ClientsByType      map[ClientType]int
	UpcomingActivities []Activity
	RecentOffers       []Offer
}

// Principal is the demo-authenticated caller.
type Principal struct {
	Email string
}

// Session is a demo login session.
type Session struct {
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthenticateParams carries the login form.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult is the outcome of a login.
type AuthenticateResult struct {
	Principal Principal
	Session   Session
	Welcome   bool
}
