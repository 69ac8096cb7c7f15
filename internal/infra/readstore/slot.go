package readstore

import (
	"context"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/infra/db"
	"slot-booking/internal/pkg/pgconv"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const slotViewColumns = `id, date, start_time, end_time, venue, capacity, status,
	booked_by, booking_id, event_name, event_description,
	recurring_pattern, recurring_end, created_by, created_at, updated_at`

// Zero-padding keeps "9:00" and "09:00" ordered correctly.
const slotOrder = ` ORDER BY date, LPAD(start_time, 5, '0'), venue`

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

var _ queries.SlotReadStore = (*SlotReadStore)(nil)

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+slotViewColumns+` FROM slots WHERE id = $1`, id)
	view, err := scanSlotView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, slot.ErrSlotNotFound
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	return view, nil
}

func (r *SlotReadStore) List(ctx context.Context, filter queries.SlotFilter) ([]queries.SlotView, int, error) {
	var w where
	if filter.Venue != nil {
		w.add("venue = ?", filter.Venue.String())
	}
	if filter.Status != nil {
		w.add("status = ?", filter.Status.String())
	}
	addDateRange(&w, filter.From, filter.To)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM slots`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count slots", err)
	}

	whereSQL := w.sql()
	pageSQL := w.page(filter.Page.Limit, filter.Page.Offset())
	views, err := r.query(ctx, `SELECT `+slotViewColumns+` FROM slots`+whereSQL+slotOrder+pageSQL, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *SlotReadStore) ListAvailable(ctx context.Context, filter queries.AvailableSlotFilter) ([]queries.SlotView, error) {
	var w where
	w.add("status = ?", slot.StatusAvailable.String())
	if filter.Venue != nil {
		w.add("venue = ?", filter.Venue.String())
	}
	addDateRange(&w, filter.From, filter.To)
	if filter.StartsFrom != nil {
		w.add("LPAD(start_time, 5, '0') >= ?", filter.StartsFrom.String())
	}
	if filter.EndsBy != nil {
		w.add("LPAD(end_time, 5, '0') <= ?", filter.EndsBy.String())
	}
	return r.query(ctx, `SELECT `+slotViewColumns+` FROM slots`+w.sql()+slotOrder, w.args...)
}

func (r *SlotReadStore) query(ctx context.Context, sql string, args ...any) ([]queries.SlotView, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	views := []queries.SlotView{}
	for rows.Next() {
		view, err := scanSlotView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return views, nil
}

func addDateRange(w *where, from, to *slot.Date) {
	if from != nil {
		w.add("date >= ?", from.Time())
	}
	if to != nil {
		w.add("date <= ?", to.Time())
	}
}

func scanSlotView(row pgx.Row) (*queries.SlotView, error) {
	var (
		v            queries.SlotView
		date         pgtype.Date
		recurringEnd pgtype.Date
		bookedBy     pgtype.UUID
		bookingID    pgtype.UUID
		eventName    pgtype.Text
		eventDesc    pgtype.Text
		capacity     int32
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(
		&v.ID, &date, &v.StartTime, &v.EndTime, &v.Venue, &capacity, &v.Status,
		&bookedBy, &bookingID, &eventName, &eventDesc,
		&v.RecurringPattern, &recurringEnd, &v.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Date = date.Time.Format(time.DateOnly)
	v.Capacity = int(capacity)
	v.BookedBy = pgconv.UUIDPtrFromPgtype(bookedBy)
	v.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	v.EventName = pgconv.StringPtrFromPgtype(eventName)
	v.EventDescription = pgconv.StringPtrFromPgtype(eventDesc)
	if end := pgconv.DatePtrFromPgtype(recurringEnd); end != nil {
		s := end.Format(time.DateOnly)
		v.RecurringEnd = &s
	}
	v.CreatedAt = createdAt
	v.UpdatedAt = updatedAt
	return &v, nil
}
