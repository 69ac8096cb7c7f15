package slot

type Status string

const (
	StatusAvailable   Status = "available"
	StatusBooked      Status = "booked"
	StatusCancelled   Status = "cancelled"
	StatusMaintenance Status = "maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusCancelled, StatusMaintenance:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

type Venue string

const (
	VenueAuditorium      Venue = "Auditorium"
	VenueSeminarHall     Venue = "Seminar Hall"
	VenueGround          Venue = "Ground"
	VenueClassroomBlockA Venue = "Classroom Block A"
	VenueLabBuilding     Venue = "Lab Building"
	VenueConferenceRoom  Venue = "Conference Room"
	VenueLibraryHall     Venue = "Library Hall"
)

var Venues = []Venue{
	VenueAuditorium,
	VenueSeminarHall,
	VenueGround,
	VenueClassroomBlockA,
	VenueLabBuilding,
	VenueConferenceRoom,
	VenueLibraryHall,
}

func (v Venue) String() string {
	return string(v)
}

func (v Venue) IsValid() bool {
	for _, known := range Venues {
		if v == known {
			return true
		}
	}
	return false
}

func NewVenue(s string) (Venue, error) {
	v := Venue(s)
	if !v.IsValid() {
		return "", ErrInvalidVenue
	}
	return v, nil
}

// RecurringPattern is stored for reference only; slots are never expanded.
type RecurringPattern string

const (
	RecurringNone    RecurringPattern = "none"
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

func (p RecurringPattern) IsValid() bool {
	switch p {
	case RecurringNone, RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	default:
		return false
	}
}

func NewRecurringPattern(s string) (RecurringPattern, error) {
	if s == "" {
		return RecurringNone, nil
	}
	p := RecurringPattern(s)
	if !p.IsValid() {
		return "", ErrInvalidRecurring
	}
	return p, nil
}
