package snapshot

// TourStatus is the lifecycle state of a tour.
type TourStatus string

const (
	TourPlanning TourStatus = "planning"
	TourActive   TourStatus = "active"
	TourFinished TourStatus = "finished"
)

// Venue is a single tour stop.
type Venue struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
	// Played venues have realized their revenue.
	Played      bool  `json:"played"`
	TicketsSold int   `json:"ticketsSold"`
	Revenue     int64 `json:"revenue"`
}

// Tour is an ordered run of venues played one per week while active.
type Tour struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Venues      []Venue    `json:"venues"`
	TicketPrice int64      `json:"ticketPrice"`
	Status      TourStatus `json:"status"`
	// CurrentVenue indexes the next unplayed venue; it only moves forward.
	CurrentVenue int   `json:"currentVenue"`
	Revenue      int64 `json:"revenue"`
	StartedOn    *Date `json:"startedOn,omitempty"`
}

// Staff is a hired manager or security team member.
type Staff struct {
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	WeeklyCost int64   `json:"weeklyCost"`
	Skill      float64 `json:"skill"`
	HiredOn    Date    `json:"hiredOn"`
}

// Staff roles.
const (
	RoleManager  = "manager"
	RoleSecurity = "security"
)

// Promotion is a paid weekly campaign boosting one song's streams.
type Promotion struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	SongID     string  `json:"songId"`
	WeeklyCost int64   `json:"weeklyCost"`
	Multiplier float64 `json:"multiplier"`
	WeeksLeft  int     `json:"weeksLeft"`
}

// OfferKind distinguishes the periodic opportunity pipelines.
type OfferKind string

const (
	OfferSoundtrack      OfferKind = "soundtrack"
	OfferFeature         OfferKind = "feature"
	OfferMagazineCover   OfferKind = "magazine_cover"
	OfferManagerRenewal  OfferKind = "manager_renewal"
	OfferSecurityRenewal OfferKind = "security_renewal"
)

// Offer is a pending opportunity awaiting an accept/decline decision.
type Offer struct {
	ID        string    `json:"id"`
	Kind      OfferKind `json:"kind"`
	From      string    `json:"from"`
	Payout    int64     `json:"payout"`
	OfferedOn Date      `json:"offeredOn"`
}
