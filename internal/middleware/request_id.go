package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID between client, proxies and server
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is where the trace ID lives in the request context
	TraceIDContextKey = "trace_id"
)

// RequestID tags every request with a trace ID. An inbound X-Trace-ID from
// an upstream proxy is honored so traces stay continuous across hops;
// otherwise a fresh UUID is minted. The ID lands in the request context for
// error responses and is echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the request's trace ID, or "" when the middleware
// has not run
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
