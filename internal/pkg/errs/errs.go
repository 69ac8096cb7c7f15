package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Error kinds. Sentinels across layers are tagged with exactly one of these
// through Mark or NewKind, and the handler layer maps kinds to HTTP statuses.
var (
	ErrValidation   = cr.New("validation failed")
	ErrNotFound     = cr.New("not found")
	ErrConflict     = cr.New("conflict")
	ErrInvalidState = cr.New("invalid state")
	ErrForbidden    = cr.New("forbidden")
	ErrUnauthorized = cr.New("unauthorized")
	ErrInternal     = cr.New("internal failure")
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// NewKind creates a sentinel that also matches kind under Is.
func NewKind(msg string, kind error) error {
	return cr.Mark(cr.New(msg), kind)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is understands marks, unlike the standard library.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Message returns the innermost cause's text, without wrap prefixes.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return cr.UnwrapAll(err).Error()
}

func As(err error, target any) bool {
	return cr.As(err, target)
}
