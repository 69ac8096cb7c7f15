package slot

import "slot-booking/internal/pkg/errs"

var (
	ErrInvalidStatus          = errs.NewKind("invalid slot status", errs.ErrValidation)
	ErrInvalidVenue           = errs.NewKind("invalid venue", errs.ErrValidation)
	ErrInvalidRecurring       = errs.NewKind("invalid recurring pattern", errs.ErrValidation)
	ErrInvalidClockTime       = errs.NewKind("time must be in HH:MM format", errs.ErrValidation)
	ErrEndBeforeStart         = errs.NewKind("end time must be after start time", errs.ErrValidation)
	ErrInvalidCapacity        = errs.NewKind("capacity must be between 1 and 1000", errs.ErrValidation)
	ErrInvalidDate            = errs.NewKind("date must be in YYYY-MM-DD format", errs.ErrValidation)
	ErrDateInPast             = errs.NewKind("slot date cannot be in the past", errs.ErrValidation)
	ErrRecurringEndBeforeDate = errs.NewKind("recurring end date cannot be before slot date", errs.ErrValidation)
	ErrStatusNotSettable      = errs.NewKind("slot status can only be set to available, maintenance or cancelled", errs.ErrValidation)
	ErrCapacityExceeded       = errs.NewKind("expected participants exceed slot capacity", errs.ErrValidation)

	ErrSlotNotFound    = errs.NewKind("slot not found", errs.ErrNotFound)
	ErrSlotUnavailable = errs.NewKind("slot is not available", errs.ErrConflict)
	ErrSlotBooked      = errs.NewKind("slot is booked and its status cannot be changed", errs.ErrConflict)
)
