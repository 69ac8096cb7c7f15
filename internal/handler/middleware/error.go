package middleware

import (
	"log/slog"
	"net/http"

	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errPanic = errs.NewKind("recovered from panic", errs.ErrInternal)

// ErrorHandler renders errors that handlers recorded without writing a body.
// Public errors carry their response in Meta; anything else is mapped by kind.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}

		status, msg := httperr.FromError(last.Err)
		if status >= http.StatusInternalServerError {
			slog.Error("unhandled request error",
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
				"error", last.Err.Error(),
				"stack", errs.ExtractStackLines(last.Err, 12),
			)
		}
		resp := httperr.Response{Status: status}
		resp.Error.Message = msg
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic", "error", rec, "path", c.Request.URL.Path, "request_id", GetRequestID(c))
				httperr.AbortWithError(c, http.StatusInternalServerError, errPanic, "Internal server error", nil)
			}
		}()
		c.Next()
	}
}
