package booking

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxEventNameLength           = 200
	MaxEventDescriptionLength    = 1000
	MaxRequirements              = 10
	MaxContactNameLength         = 100
	MaxRejectionReasonLength     = 500
	MaxSpecialInstructionsLength = 500
)

var (
	phoneRegex        = regexp.MustCompile(`^[0-9]{10}$`)
	contactEmailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

type ContactPerson struct {
	Name  string
	Phone string
	Email string
}

func NewContactPerson(name, phone, email string) (ContactPerson, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxContactNameLength {
		return ContactPerson{}, ErrInvalidContactName
	}
	phone = strings.TrimSpace(phone)
	if !phoneRegex.MatchString(phone) {
		return ContactPerson{}, ErrInvalidContactPhone
	}
	email = strings.TrimSpace(email)
	if !contactEmailRegex.MatchString(email) {
		return ContactPerson{}, ErrInvalidContactEmail
	}
	return ContactPerson{Name: name, Phone: phone, Email: email}, nil
}

// IsValidPhone reports whether s is a ten digit phone number.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

func newEventName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxEventNameLength {
		return "", ErrInvalidEventName
	}
	return s, nil
}

func newEventDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxEventDescriptionLength {
		return "", ErrInvalidEventDescription
	}
	return s, nil
}

func newRequirements(in []string) ([]string, error) {
	if len(in) > MaxRequirements {
		return nil, ErrTooManyRequirements
	}
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// optionalText trims s and maps blank input to nil.
func optionalText(s *string, limit int, tooLong error) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > limit {
		return nil, tooLong
	}
	return &v, nil
}

func NewRejectionReason(s *string) (*string, error) {
	return optionalText(s, MaxRejectionReasonLength, ErrRejectionReasonTooLong)
}
