package components

import (
	"slot-booking/internal/infra/db"
	"slot-booking/internal/infra/readstore"
	"slot-booking/internal/infra/uow"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	writeModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

// Repositories are built per transaction by the unit of work.
var writeModule = fx.Module("persistence/write",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool)
}
