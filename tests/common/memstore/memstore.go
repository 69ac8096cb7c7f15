//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork for use-case tests.
// Transactions are serialized and work on copies that are committed only
// when the callback succeeds.
package memstore

import (
	"context"
	"sync"
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/domain/user"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ErrDuplicateActiveBooking mirrors the partial unique index on bookings.
var ErrDuplicateActiveBooking = errs.NewKind("slot already has an active booking", errs.ErrConflict)

// ErrRejectionReasonCheck mirrors the bookings_rejection_reason CHECK constraint.
var ErrRejectionReasonCheck = errs.NewKind("rejection reason set on a booking that is not rejected", errs.ErrValidation)

// Store operation names accepted by FailOn.
const (
	OpSlotReserve    = "slots.reserve"
	OpSlotRelease    = "slots.release"
	OpBookingCreate  = "bookings.create"
	OpBookingUpdate  = "bookings.update"
	OpBookingDelete  = "bookings.delete"
	OpUserCreate     = "users.create"
	OpUserTouchLogin = "users.touch_last_login"
)

type Store struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]*slot.Slot
	bookings map[uuid.UUID]*booking.Booking
	users    map[uuid.UUID]*user.User
	failures map[string]error
	commits  int
}

func New() *Store {
	return &Store{
		slots:    map[uuid.UUID]*slot.Slot{},
		bookings: map[uuid.UUID]*booking.Booking{},
		users:    map[uuid.UUID]*user.User{},
		failures: map[string]error{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{
		slots:    cloneMap(s.slots, (*slot.Slot).Clone),
		bookings: cloneMap(s.bookings, (*booking.Booking).Clone),
		users:    cloneMap(s.users, cloneUser),
		failures: s.failures,
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.slots = tx.slots
	s.bookings = tx.bookings
	s.users = tx.users
	s.commits++
	return nil
}

// FailOn makes the named operation fail with err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) PutSlot(sl *slot.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[sl.ID()] = sl.Clone()
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b.Clone()
}

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = cloneUser(u)
}

// Slot returns a copy of the committed slot, or nil.
func (s *Store) Slot(id uuid.UUID) *slot.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl, ok := s.slots[id]; ok {
		return sl.Clone()
	}
	return nil
}

// Booking returns a copy of the committed booking, or nil.
func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		return b.Clone()
	}
	return nil
}

func (s *Store) User(id uuid.UUID) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u)
	}
	return nil
}

// BookingsForSlot returns committed bookings referencing slotID.
func (s *Store) BookingsForSlot(slotID uuid.UUID) []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*booking.Booking
	for _, b := range s.bookings {
		if b.SlotID() == slotID {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type memTx struct {
	slots    map[uuid.UUID]*slot.Slot
	bookings map[uuid.UUID]*booking.Booking
	users    map[uuid.UUID]*user.User
	failures map[string]error
}

func (t *memTx) Slots() shared.SlotRepository       { return slotRepo{t} }
func (t *memTx) Bookings() shared.BookingRepository { return bookingRepo{t} }
func (t *memTx) Users() shared.UserRepository       { return userRepo{t} }

func (t *memTx) fail(op string) error {
	return t.failures[op]
}

type slotRepo struct{ tx *memTx }

func (r slotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	sl, ok := r.tx.slots[id]
	if !ok {
		return nil, slot.ErrSlotNotFound
	}
	return sl.Clone(), nil
}

func (r slotRepo) Create(_ context.Context, sl *slot.Slot) error {
	r.tx.slots[sl.ID()] = sl.Clone()
	return nil
}

func (r slotRepo) Reserve(_ context.Context, id uuid.UUID, holder slot.Holder) error {
	if err := r.tx.fail(OpSlotReserve); err != nil {
		return err
	}
	sl, ok := r.tx.slots[id]
	if !ok {
		return slot.ErrSlotNotFound
	}
	return sl.Reserve(holder, time.Now())
}

func (r slotRepo) Release(_ context.Context, id uuid.UUID) error {
	if err := r.tx.fail(OpSlotRelease); err != nil {
		return err
	}
	sl, ok := r.tx.slots[id]
	if !ok {
		return slot.ErrSlotNotFound
	}
	sl.Release(time.Now())
	return nil
}

func (r slotRepo) RefreshEvent(_ context.Context, id, bookingID uuid.UUID, name, description string) error {
	sl, ok := r.tx.slots[id]
	if !ok {
		return slot.ErrSlotNotFound
	}
	if sl.HeldBy(bookingID) {
		sl.RefreshEvent(name, description, time.Now())
	}
	return nil
}

func (r slotRepo) UpdateStatus(_ context.Context, id uuid.UUID, status slot.Status) error {
	sl, ok := r.tx.slots[id]
	if !ok {
		return slot.ErrSlotNotFound
	}
	return sl.SetStatus(status, time.Now())
}

type bookingRepo struct{ tx *memTx }

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.tx.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.fail(OpBookingCreate); err != nil {
		return err
	}
	if err := r.checkRow(b); err != nil {
		return err
	}
	r.tx.bookings[b.ID()] = b.Clone()
	return nil
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if err := r.tx.fail(OpBookingUpdate); err != nil {
		return err
	}
	if _, ok := r.tx.bookings[b.ID()]; !ok {
		return booking.ErrBookingNotFound
	}
	if err := r.checkRow(b); err != nil {
		return err
	}
	r.tx.bookings[b.ID()] = b.Clone()
	return nil
}

func (r bookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.fail(OpBookingDelete); err != nil {
		return err
	}
	if _, ok := r.tx.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(r.tx.bookings, id)
	return nil
}

func (r bookingRepo) checkRow(b *booking.Booking) error {
	if b.RejectionReason() != nil && b.Status() != booking.StatusRejected {
		return ErrRejectionReasonCheck
	}
	return r.checkActiveUnique(b)
}

func (r bookingRepo) checkActiveUnique(b *booking.Booking) error {
	if !b.Status().IsActive() {
		return nil
	}
	for id, other := range r.tx.bookings {
		if id != b.ID() && other.SlotID() == b.SlotID() && other.Status().IsActive() {
			return ErrDuplicateActiveBooking
		}
	}
	return nil
}

type userRepo struct{ tx *memTx }

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.tx.users[id]
	if !ok {
		return nil, shared.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	for _, u := range r.tx.users {
		if u.Email().Value() == email.Value() {
			return cloneUser(u), nil
		}
	}
	return nil, shared.ErrUserNotFound
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.tx.fail(OpUserCreate); err != nil {
		return err
	}
	for _, existing := range r.tx.users {
		if existing.Email().Value() == u.Email().Value() {
			return shared.ErrEmailTaken
		}
	}
	r.tx.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) UpdateProfile(_ context.Context, u *user.User) error {
	if _, ok := r.tx.users[u.ID()]; !ok {
		return shared.ErrUserNotFound
	}
	r.tx.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	if err := r.tx.fail(OpUserTouchLogin); err != nil {
		return err
	}
	u, ok := r.tx.users[id]
	if !ok {
		return shared.ErrUserNotFound
	}
	now := time.Now()
	r.tx.users[id] = user.ReconstructUser(u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.Role(), u.Club(), &now, u.IsActive(), u.CreatedAt(), now)
	return nil
}

func cloneUser(u *user.User) *user.User {
	var club *user.Club
	if u.Club() != nil {
		c := *u.Club()
		club = &c
	}
	var lastLogin *time.Time
	if u.LastLogin() != nil {
		t := *u.LastLogin()
		lastLogin = &t
	}
	return user.ReconstructUser(u.ID(), u.Name(), u.Email(), u.PasswordHash(), u.Role(), club, lastLogin, u.IsActive(), u.CreatedAt(), u.UpdatedAt())
}

func cloneMap[T any](in map[uuid.UUID]T, clone func(T) T) map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(in))
	for k, v := range in {
		out[k] = clone(v)
	}
	return out
}
