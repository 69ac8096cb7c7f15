package booking

import "slot-booking/internal/pkg/errs"

var (
	ErrInvalidStatus              = errs.NewKind("invalid booking status", errs.ErrValidation)
	ErrSlotRequired               = errs.NewKind("slot is required", errs.ErrValidation)
	ErrInvalidEventName           = errs.NewKind("event name is required and must be at most 200 characters", errs.ErrValidation)
	ErrInvalidEventDescription    = errs.NewKind("event description is required and must be at most 1000 characters", errs.ErrValidation)
	ErrInvalidParticipants        = errs.NewKind("expected participants must be at least 1", errs.ErrValidation)
	ErrTooManyRequirements        = errs.NewKind("cannot have more than 10 requirements", errs.ErrValidation)
	ErrInvalidContactName         = errs.NewKind("contact person name is required and must be at most 100 characters", errs.ErrValidation)
	ErrInvalidContactPhone        = errs.NewKind("phone number must be 10 digits", errs.ErrValidation)
	ErrInvalidContactEmail        = errs.NewKind("invalid contact email format", errs.ErrValidation)
	ErrRejectionReasonTooLong     = errs.NewKind("rejection reason must be at most 500 characters", errs.ErrValidation)
	ErrSpecialInstructionsTooLong = errs.NewKind("special instructions must be at most 500 characters", errs.ErrValidation)

	ErrBookingNotFound      = errs.NewKind("booking not found", errs.ErrNotFound)
	ErrNotPending           = errs.NewKind("only pending bookings can be modified", errs.ErrInvalidState)
	ErrTransitionNotAllowed = errs.NewKind("booking status transition not allowed", errs.ErrConflict)
)
