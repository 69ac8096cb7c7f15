// Package migrations holds the SQL schema and applies it in file order.
package migrations

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"sort"

	"slot-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Apply runs every embedded migration. Statements are idempotent, so running
// against an initialized database is a no-op.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return errs.Wrap(err, "read migration "+name)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return errs.Wrap(err, "apply migration "+name)
		}
		slog.Debug("migration applied", "file", name)
	}
	return nil
}
