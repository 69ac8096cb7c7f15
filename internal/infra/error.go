package infra

import (
	"context"
	"errors"
	"log/slog"

	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/pkg/pgconv"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs and wraps a driver error. Without an explicit kind the
// SQLSTATE decides. The result carries the matching errs kind, so callers
// above the repository never inspect driver errors.
func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := classify(err)
	if len(kinds) > 0 {
		kind = kinds[0]
	}

	level := slog.LevelError
	if kind != KindDBFailure {
		level = slog.LevelWarn
	}
	attrs := []any{slog.String("kind", string(kind))}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if c := pgconv.ConstraintName(err); c != "" {
			attrs = append(attrs, slog.String("constraint", c))
		}
	}
	slog.Log(context.Background(), level, "repository error: "+msg, attrs...)

	return errs.Mark(RepositoryError{Kind: kind, msg: msg, err: errs.Wrap(err, msg)}, kindMark(kind))
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	switch pgconv.PgErrorCode(err) {
	case pgconv.CodeUniqueViolation:
		return KindDuplicateKey
	case pgconv.CodeForeignKeyViolation:
		return KindForeignKeyViolated
	case pgconv.CodeCheckViolation:
		return KindCheckViolated
	default:
		return KindDBFailure
	}
}

func kindMark(kind RepositoryErrorKind) error {
	switch kind {
	case KindNotFound:
		return errs.ErrNotFound
	case KindDuplicateKey:
		return errs.ErrConflict
	case KindForeignKeyViolated, KindCheckViolated:
		return errs.ErrValidation
	default:
		return errs.ErrInternal
	}
}
