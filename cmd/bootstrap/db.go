package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking/internal/infra/db"
	"slot-booking/internal/pkg/config"
	"slot-booking/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(ApplyMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// ApplyMigrations brings the schema up to date before anything else starts.
func ApplyMigrations(lc fx.Lifecycle, pool *pgxpool.Pool) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrations.Apply(ctx, pool); err != nil {
				return err
			}
			slog.Info("database schema is up to date")
			return nil
		},
	})
}
