package middleware

import (
	"strconv"

	"slot-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests by matched route template, so path ids do not
// explode label cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.IncHTTP(route, strconv.Itoa(c.Writer.Status()))
	}
}
