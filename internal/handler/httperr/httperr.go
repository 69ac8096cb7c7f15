package httperr

import (
	"net/http"

	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

const internalMessage = "Internal server error"

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// FromError maps an error kind to a status and client message. Messages of
// unclassified errors are never exposed.
func FromError(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, errs.Message(err)
	case errs.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, errs.Message(err)
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, errs.Message(err)
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, errs.Message(err)
	case errs.Is(err, errs.ErrConflict), errs.Is(err, errs.ErrInvalidState):
		return http.StatusConflict, errs.Message(err)
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

// Abort responds with the status derived from err's kind.
func Abort(c *gin.Context, err error) {
	status, msg := FromError(err)
	AbortWithError(c, status, err, msg, nil)
}
