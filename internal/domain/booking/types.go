package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether a booking in this status holds its slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// CanTransition is the status workflow. Same-status moves are not transitions.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusApproved, StatusRejected:
		return from == StatusPending
	case StatusCancelled:
		return from == StatusPending || from == StatusApproved || from == StatusRejected
	default:
		return false
	}
}
