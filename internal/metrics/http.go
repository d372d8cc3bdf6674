package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// EchoMiddleware records request counts and latency per matched route
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			if httpRequestsTotal != nil {
				httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			}
			if httpRequestLatency != nil {
				httpRequestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			}
			return err
		}
	}
}
