package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/metrics"
	"slot-booking/internal/pkg/patch"
	"slot-booking/internal/usecase/authz"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyKeyReused  = errs.NewKind("idempotency key was used with a different request", errs.ErrConflict)
	ErrIdempotencyInProgress = errs.NewKind("a request with this idempotency key is still in progress", errs.ErrConflict)
)

// Operation names reported to metrics.
const (
	opCreate    = "create"
	opUpdate    = "update"
	opSetStatus = "set_status"
	opDelete    = "delete"
)

type CreateBookingResult struct {
	BookingID  uuid.UUID
	IsReplayed bool
}

// BookingPatch carries the fields a caller wants to change. Nil means unchanged.
type BookingPatch struct {
	SlotID               *uuid.UUID
	Club                 *string
	EventName            *string
	EventDescription     *string
	ExpectedParticipants *int
	Requirements         *[]string
	ContactName          *string
	ContactPhone         *string
	ContactEmail         *string
	SpecialInstructions  *string
}

func (p BookingPatch) applyTo(in booking.Input) booking.Input {
	in.SlotID = patch.Coalesce(p.SlotID, in.SlotID)
	in.Club = patch.Coalesce(p.Club, in.Club)
	in.EventName = patch.Coalesce(p.EventName, in.EventName)
	in.EventDescription = patch.Coalesce(p.EventDescription, in.EventDescription)
	in.ExpectedParticipants = patch.Coalesce(p.ExpectedParticipants, in.ExpectedParticipants)
	in.Requirements = patch.Coalesce(p.Requirements, in.Requirements)
	in.ContactName = patch.Coalesce(p.ContactName, in.ContactName)
	in.ContactPhone = patch.Coalesce(p.ContactPhone, in.ContactPhone)
	in.ContactEmail = patch.Coalesce(p.ContactEmail, in.ContactEmail)
	if p.SpecialInstructions != nil {
		in.SpecialInstructions = p.SpecialInstructions
	}
	return in
}

// BookingPolicy holds the configurable parts of the workflow.
type BookingPolicy struct {
	// ReleaseOnReject frees the slot when a pending booking is rejected.
	ReleaseOnReject bool
}

type BookingCommands interface {
	Create(ctx context.Context, identity user.Identity, in booking.Input, idempotencyKey string) (*CreateBookingResult, error)
	Update(ctx context.Context, identity user.Identity, bookingID uuid.UUID, p BookingPatch) error
	SetStatus(ctx context.Context, identity user.Identity, bookingID uuid.UUID, status string, rejectionReason *string) error
	Delete(ctx context.Context, identity user.Identity, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow         shared.UnitOfWork
	idempotency shared.IdempotencyStore
	clock       clock.Clock
	metrics     *metrics.Metrics
	policy      BookingPolicy
}

// NewBookingCommands wires the coordinator. idempotency may be nil, which
// disables Idempotency-Key handling.
func NewBookingCommands(
	uow shared.UnitOfWork,
	idempotency shared.IdempotencyStore,
	clk clock.Clock,
	m *metrics.Metrics,
	policy BookingPolicy,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:         uow,
		idempotency: idempotency,
		clock:       clk,
		metrics:     m,
		policy:      policy,
	}
}

func (uc *bookingCommandsImpl) Create(ctx context.Context, identity user.Identity, in booking.Input, idempotencyKey string) (result *CreateBookingResult, err error) {
	defer uc.observe(opCreate, time.Now(), &err)

	if err = authz.For(identity).Check(authz.CreateBooking, uuid.Nil); err != nil {
		return nil, err
	}
	details, err := booking.NewDetails(in)
	if err != nil {
		return nil, err
	}

	if idempotencyKey == "" || uc.idempotency == nil {
		id, cerr := uc.createInTx(ctx, identity, details)
		if cerr != nil {
			return nil, cerr
		}
		return &CreateBookingResult{BookingID: id}, nil
	}
	return uc.createIdempotent(ctx, identity, in, details, idempotencyKey)
}

func (uc *bookingCommandsImpl) createIdempotent(
	ctx context.Context,
	identity user.Identity,
	in booking.Input,
	details booking.Details,
	key string,
) (*CreateBookingResult, error) {
	hash, err := requestHash(in)
	if err != nil {
		return nil, err
	}

	existing, err := uc.idempotency.Claim(ctx, key, identity.ID, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch {
		case existing.RequestHash != hash:
			return nil, ErrIdempotencyKeyReused
		case existing.Status == shared.IdempotencyCompleted && existing.BookingID != nil:
			return &CreateBookingResult{BookingID: *existing.BookingID, IsReplayed: true}, nil
		default:
			return nil, ErrIdempotencyInProgress
		}
	}

	id, err := uc.createInTx(ctx, identity, details)
	if err != nil {
		if rerr := uc.idempotency.Release(ctx, key, identity.ID); rerr != nil {
			slog.WarnContext(ctx, "failed to release idempotency key", "key", key, "error", rerr.Error())
		}
		return nil, err
	}
	if cerr := uc.idempotency.Complete(ctx, key, identity.ID, hash, id); cerr != nil {
		slog.WarnContext(ctx, "failed to complete idempotency key", "key", key, "booking_id", id, "error", cerr.Error())
	}
	return &CreateBookingResult{BookingID: id}, nil
}

func (uc *bookingCommandsImpl) createInTx(ctx context.Context, identity user.Identity, details booking.Details) (uuid.UUID, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, details.SlotID)
		if err != nil {
			return err
		}
		if !s.IsAvailable() {
			return slot.ErrSlotUnavailable
		}
		if err := s.CheckNotPast(uc.clock.Now()); err != nil {
			return err
		}
		if err := s.CheckCapacity(details.ExpectedParticipants); err != nil {
			return err
		}

		b := booking.NewBooking(identity.ID, details, uc.clock.Now())
		if err := tx.Slots().Reserve(ctx, s.ID(), holderOf(b)); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		createdID = b.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (uc *bookingCommandsImpl) Update(ctx context.Context, identity user.Identity, bookingID uuid.UUID, p BookingPatch) (err error) {
	defer uc.observe(opUpdate, time.Now(), &err)

	perms := authz.For(identity)
	if !perms.Allows(authz.UpdateBooking) {
		return authz.ErrActionForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := perms.Check(authz.UpdateBooking, b.UserID()); err != nil {
			return err
		}
		if err := b.EnsureEditable(); err != nil {
			return err
		}

		current := b.Details()
		next, err := booking.NewDetails(p.applyTo(current.Input()))
		if err != nil {
			return err
		}

		if next.SlotID != current.SlotID {
			if err := uc.reassign(ctx, tx, b, next); err != nil {
				return err
			}
		} else {
			if next.ExpectedParticipants != current.ExpectedParticipants {
				s, err := tx.Slots().FindByID(ctx, current.SlotID)
				if err != nil {
					return err
				}
				if err := s.CheckCapacity(next.ExpectedParticipants); err != nil {
					return err
				}
			}
			if next.EventName != current.EventName || next.EventDescription != current.EventDescription {
				if err := tx.Slots().RefreshEvent(ctx, current.SlotID, b.ID(), next.EventName, next.EventDescription); err != nil {
					return err
				}
			}
		}

		if err := b.Revise(next, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, b)
	})
}

// reassign moves b to the slot named in next. Every check runs before the
// first write.
func (uc *bookingCommandsImpl) reassign(ctx context.Context, tx shared.Tx, b *booking.Booking, next booking.Details) error {
	target, err := tx.Slots().FindByID(ctx, next.SlotID)
	if err != nil {
		return err
	}
	if !target.IsAvailable() {
		return slot.ErrSlotUnavailable
	}
	if err := target.CheckNotPast(uc.clock.Now()); err != nil {
		return err
	}
	if err := target.CheckCapacity(next.ExpectedParticipants); err != nil {
		return err
	}

	if err := uc.releaseIfHeld(ctx, tx, b.SlotID(), b.ID()); err != nil {
		return err
	}
	return tx.Slots().Reserve(ctx, next.SlotID, slot.Holder{
		BookingID:        b.ID(),
		UserID:           b.UserID(),
		EventName:        next.EventName,
		EventDescription: next.EventDescription,
	})
}

func (uc *bookingCommandsImpl) SetStatus(ctx context.Context, identity user.Identity, bookingID uuid.UUID, status string, rejectionReason *string) (err error) {
	defer uc.observe(opSetStatus, time.Now(), &err)

	if err = authz.For(identity).Check(authz.SetBookingStatus, uuid.Nil); err != nil {
		return err
	}
	to, err := booking.NewStatus(status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := b.Transition(to, identity.ID, rejectionReason, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}

		if to == booking.StatusCancelled || (to == booking.StatusRejected && uc.policy.ReleaseOnReject) {
			return uc.releaseIfHeld(ctx, tx, b.SlotID(), b.ID())
		}
		return nil
	})
}

func (uc *bookingCommandsImpl) Delete(ctx context.Context, identity user.Identity, bookingID uuid.UUID) (err error) {
	defer uc.observe(opDelete, time.Now(), &err)

	perms := authz.For(identity)
	if !perms.Allows(authz.DeleteBooking) {
		return authz.ErrActionForbidden
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := perms.Check(authz.DeleteBooking, b.UserID()); err != nil {
			return err
		}
		if b.Status().IsActive() {
			if err := uc.releaseIfHeld(ctx, tx, b.SlotID(), b.ID()); err != nil {
				return err
			}
		}
		return tx.Bookings().Delete(ctx, b.ID())
	})
}

// releaseIfHeld frees slotID only while bookingID is its holder, so a slot
// already taken over by another booking is left alone.
func (uc *bookingCommandsImpl) releaseIfHeld(ctx context.Context, tx shared.Tx, slotID, bookingID uuid.UUID) error {
	s, err := tx.Slots().FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slot.ErrSlotNotFound) {
			slog.WarnContext(ctx, "booking references a missing slot", "slot_id", slotID, "booking_id", bookingID)
			return nil
		}
		return err
	}
	if !s.HeldBy(bookingID) {
		return nil
	}
	return tx.Slots().Release(ctx, slotID)
}

func (uc *bookingCommandsImpl) observe(operation string, started time.Time, err *error) {
	uc.metrics.ObserveBooking(operation, metrics.Outcome(*err), started)
}

func holderOf(b *booking.Booking) slot.Holder {
	d := b.Details()
	return slot.Holder{
		BookingID:        b.ID(),
		UserID:           b.UserID(),
		EventName:        d.EventName,
		EventDescription: d.EventDescription,
	}
}

func requestHash(in booking.Input) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", errs.Wrap(err, "hash booking request")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
