// Package converter maps database rows to domain aggregates and back.
package converter

import (
	"slot-booking/internal/pkg/errs"
)

// errCorruptRow marks rows that no longer satisfy the domain rules.
var errCorruptRow = errs.NewKind("stored row violates domain rules", errs.ErrInternal)

func corrupt(err error, table string) error {
	return errs.Mark(errs.Wrap(err, "decode "+table+" row"), errCorruptRow)
}
