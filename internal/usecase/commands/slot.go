package commands

import (
	"context"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/usecase/authz"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSlotInput struct {
	Date             string
	StartTime        string
	EndTime          string
	Venue            string
	Capacity         int
	RecurringPattern string
	RecurringEnd     *string
}

func (in CreateSlotInput) toDomain(createdBy uuid.UUID, clk clock.Clock) (*slot.Slot, error) {
	date, err := slot.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	tr, err := slot.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	venue, err := slot.NewVenue(in.Venue)
	if err != nil {
		return nil, err
	}
	capacity, err := slot.NewCapacity(in.Capacity)
	if err != nil {
		return nil, err
	}
	pattern, err := slot.NewRecurringPattern(in.RecurringPattern)
	if err != nil {
		return nil, err
	}
	var recurringEnd *slot.Date
	if in.RecurringEnd != nil && *in.RecurringEnd != "" {
		d, err := slot.ParseDate(*in.RecurringEnd)
		if err != nil {
			return nil, err
		}
		recurringEnd = &d
	}
	return slot.NewSlot(date, tr, venue, capacity, pattern, recurringEnd, createdBy, clk.Now())
}

type SlotCommands interface {
	Create(ctx context.Context, identity user.Identity, in CreateSlotInput) (uuid.UUID, error)
	SetStatus(ctx context.Context, identity user.Identity, slotID uuid.UUID, status string) error
}

type slotCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSlotCommands(uow shared.UnitOfWork, clk clock.Clock) SlotCommands {
	return &slotCommandsImpl{uow: uow, clock: clk}
}

func (uc *slotCommandsImpl) Create(ctx context.Context, identity user.Identity, in CreateSlotInput) (uuid.UUID, error) {
	if err := authz.For(identity).Check(authz.ManageSlots, uuid.Nil); err != nil {
		return uuid.Nil, err
	}
	s, err := in.toDomain(identity.ID, uc.clock)
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Create(ctx, s)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return s.ID(), nil
}

func (uc *slotCommandsImpl) SetStatus(ctx context.Context, identity user.Identity, slotID uuid.UUID, status string) error {
	if err := authz.For(identity).Check(authz.ManageSlots, uuid.Nil); err != nil {
		return err
	}
	st, err := slot.NewStatus(status)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			return err
		}
		if err := s.SetStatus(st, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Slots().UpdateStatus(ctx, slotID, st)
	})
}
