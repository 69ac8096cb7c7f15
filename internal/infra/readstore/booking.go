package readstore

import (
	"context"
	"time"

	"slot-booking/internal/domain/booking"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/pkg/pgconv"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewSelect = `SELECT
	b.id, b.club, b.event_name, b.event_description, b.expected_participants,
	b.status, b.requirements, b.contact_name, b.contact_phone, b.contact_email,
	b.approval_date, b.rejection_reason, b.special_instructions, b.created_at, b.updated_at,
	s.id, s.date, s.start_time, s.end_time, s.venue, s.capacity,
	u.id, u.name, u.email, u.role, u.club,
	a.id, a.name, a.email, a.role, a.club
FROM bookings b
JOIN slots s ON s.id = b.slot_id
JOIN users u ON u.id = b.user_id
LEFT JOIN users a ON a.id = b.approved_by`

const bookingCountSelect = `SELECT COUNT(*) FROM bookings b`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, bookingViewSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]queries.BookingView, int, error) {
	var w where
	if filter.OwnerID != nil {
		w.add("b.user_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		w.add("b.status = ?", filter.Status.String())
	}
	if filter.Club != nil {
		w.add("b.club = ?", filter.Club.String())
	}
	if filter.From != nil {
		w.add("b.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("b.created_at <= ?", *filter.To)
	}

	var total int
	if err := r.db.QueryRow(ctx, bookingCountSelect+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	sql := bookingViewSelect + w.sql() + ` ORDER BY b.created_at DESC, b.id`
	if filter.Page.Limit > 0 {
		sql += w.page(filter.Page.Limit, filter.Page.Offset())
	}

	rows, err := r.db.Query(ctx, sql, w.args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, total, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v                   queries.BookingView
		participants        int32
		approvalDate        pgtype.Timestamptz
		rejectionReason     pgtype.Text
		specialInstructions pgtype.Text
		slotDate            pgtype.Date
		slotCapacity        int32
		ownerClub           pgtype.Text
		approverID          pgtype.UUID
		approverName        pgtype.Text
		approverEmail       pgtype.Text
		approverRole        pgtype.Text
		approverClub        pgtype.Text
		createdAt           time.Time
		updatedAt           time.Time
	)
	err := row.Scan(
		&v.ID, &v.Club, &v.EventName, &v.EventDescription, &participants,
		&v.Status, &v.Requirements, &v.ContactPerson.Name, &v.ContactPerson.Phone, &v.ContactPerson.Email,
		&approvalDate, &rejectionReason, &specialInstructions, &createdAt, &updatedAt,
		&v.Slot.ID, &slotDate, &v.Slot.StartTime, &v.Slot.EndTime, &v.Slot.Venue, &slotCapacity,
		&v.User.ID, &v.User.Name, &v.User.Email, &v.User.Role, &ownerClub,
		&approverID, &approverName, &approverEmail, &approverRole, &approverClub,
	)
	if err != nil {
		return nil, err
	}

	v.ExpectedParticipants = int(participants)
	if v.Requirements == nil {
		v.Requirements = []string{}
	}
	v.ApprovalDate = pgconv.TimePtrFromPgtype(approvalDate)
	v.RejectionReason = pgconv.StringPtrFromPgtype(rejectionReason)
	v.SpecialInstructions = pgconv.StringPtrFromPgtype(specialInstructions)
	v.CreatedAt = createdAt
	v.UpdatedAt = updatedAt
	v.Slot.Date = slotDate.Time.Format(time.DateOnly)
	v.Slot.Capacity = int(slotCapacity)
	v.User.Club = pgconv.StringPtrFromPgtype(ownerClub)
	if approverID.Valid {
		v.ApprovedBy = &queries.UserSummary{
			ID:    uuid.UUID(approverID.Bytes),
			Name:  approverName.String,
			Email: approverEmail.String,
			Role:  approverRole.String,
			Club:  pgconv.StringPtrFromPgtype(approverClub),
		}
	}
	return &v, nil
}
