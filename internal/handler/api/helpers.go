package api

import (
	"net/http"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/handler/validation"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errUnauthenticated = errs.NewKind("user not authenticated", errs.ErrUnauthorized)
	errInvalidID       = errs.NewKind("invalid id", errs.ErrValidation)
)

func currentIdentity(c *gin.Context) (user.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
	}
	return identity, ok
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errInvalidID), "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", validation.Details(err))
		return false
	}
	return true
}
