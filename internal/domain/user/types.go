package user

type Role string

const (
	RoleUser       Role = "user"
	RoleClubAdmin  Role = "club_admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleClubAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Club is one of the fixed organizing bodies. Bookings are filed on behalf of
// a club and club admins are bound to one.
type Club string

const (
	ClubTechnical Club = "Technical Club"
	ClubCultural  Club = "Cultural Club"
	ClubSports    Club = "Sports Club"
	ClubLiterary  Club = "Literary Club"
	ClubOther     Club = "Other"
)

var Clubs = []Club{ClubTechnical, ClubCultural, ClubSports, ClubLiterary, ClubOther}

func (c Club) String() string {
	return string(c)
}

func (c Club) IsValid() bool {
	switch c {
	case ClubTechnical, ClubCultural, ClubSports, ClubLiterary, ClubOther:
		return true
	default:
		return false
	}
}

func NewClub(s string) (Club, error) {
	club := Club(s)
	if !club.IsValid() {
		return "", ErrInvalidClub
	}
	return club, nil
}
