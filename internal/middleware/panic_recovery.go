package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"expense-tracker-api/internal/errors"
)

// PanicRecovery converts a panicking handler into a SYSTEM_001 response
// instead of tearing down the connection. The panic value and stack are
// logged with the request's trace ID so the failure can be located.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("Panic recovered",
					"trace_id", traceID,
					"panic", r,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"stack", string(debug.Stack()),
				)

				response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, response); err != nil {
					slog.Error("Failed to send panic recovery response",
						"trace_id", traceID,
						"error", err,
					)
				}
			}()

			return next(c)
		}
	}
}
