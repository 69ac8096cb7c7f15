package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/metrics"
	"slot-booking/internal/pkg/password"
	"slot-booking/internal/usecase"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(EnsureSuperAdmin),
)

var usecaseBaseOption = fx.Provide(
	NewClock,
	password.DefaultHasher,
	metrics.New,
	func(cfg config.Config) commands.BookingPolicy {
		return commands.BookingPolicy{ReleaseOnReject: cfg.Booking.ReleaseOnReject}
	},
)

// NewClock reports time in the venue time zone.
func NewClock(cfg config.Config) (clock.Clock, error) {
	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load booking time zone %q: %w", cfg.Booking.TimeZone, err)
	}
	return clock.NewRealClock(loc), nil
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSlotCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		func(store queries.SlotReadStore, clk clock.Clock, cfg config.Config) queries.SlotQueries {
			return queries.NewSlotQueries(store, clk, cfg.Booking.MaxListLimit)
		},
		func(store queries.BookingReadStore, cfg config.Config) queries.BookingQueries {
			return queries.NewBookingQueries(store, cfg.Booking.MaxListLimit)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// EnsureSuperAdmin seeds the administrator from ADMIN_EMAIL and
// ADMIN_PASSWORD once migrations have run.
func EnsureSuperAdmin(lc fx.Lifecycle, cmds commands.AuthCommands, cfg config.Config) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cmds.EnsureSuperAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
				return err
			}
			slog.Info("super admin ensured", "email", cfg.Admin.Email)
			return nil
		},
	})
}
