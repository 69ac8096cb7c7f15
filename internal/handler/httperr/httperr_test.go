//go:build unit

package httperr_test

import (
	"errors"
	"net/http"
	"testing"

	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	notFound := errs.NewKind("slot not found", errs.ErrNotFound)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "validation", err: errs.NewKind("capacity must be between 1 and 1000", errs.ErrValidation), wantStatus: http.StatusBadRequest, wantMsg: "capacity must be between 1 and 1000"},
		{name: "unauthorized", err: errs.NewKind("invalid email or password", errs.ErrUnauthorized), wantStatus: http.StatusUnauthorized, wantMsg: "invalid email or password"},
		{name: "forbidden", err: errs.NewKind("nope", errs.ErrForbidden), wantStatus: http.StatusForbidden, wantMsg: "nope"},
		{name: "not found", err: notFound, wantStatus: http.StatusNotFound, wantMsg: "slot not found"},
		{name: "conflict", err: errs.NewKind("slot is not available", errs.ErrConflict), wantStatus: http.StatusConflict, wantMsg: "slot is not available"},
		{name: "invalid state", err: errs.NewKind("only pending", errs.ErrInvalidState), wantStatus: http.StatusConflict, wantMsg: "only pending"},
		{name: "wrapped kind keeps the inner message", err: errs.Wrap(notFound, "find slot for update"), wantStatus: http.StatusNotFound, wantMsg: "slot not found"},
		{name: "unclassified", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "internal kind", err: errs.NewKind("rollback failed", errs.ErrInternal), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := httperr.FromError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}
