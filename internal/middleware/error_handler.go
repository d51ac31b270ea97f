package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"expense-tracker-api/internal/errors"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Total number of API errors by code, endpoint, and status",
	},
	[]string{"code", "endpoint", "status"},
)

// CustomHTTPErrorHandler is the echo error handler. It converts whatever
// escaped a handler into the standard error envelope: echo's own HTTP
// errors keep their status, validator errors become VALIDATION_001 with
// per-field details, anything else is hidden behind SYSTEM_001.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	response, status := classifyError(err, traceID)

	logLevel := slog.LevelWarn
	if status >= 500 {
		logLevel = slog.LevelError
	}
	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", response.Error.Code,
		"status", status,
		"message", response.Error.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(
		response.Error.Code,
		c.Path(),
		fmt.Sprintf("%d", status),
	).Inc()

	if sendErr := c.JSON(status, response); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

func classifyError(err error, traceID string) (*errors.ErrorResponse, int) {
	switch e := err.(type) {
	case *echo.HTTPError:
		response := errors.NewErrorResponse(
			mapHTTPStatusToErrorCode(e.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", e.Message)),
		)
		return response, e.Code

	case validator.ValidationErrors:
		fieldErrors := make(map[string]string, len(e))
		for _, fieldErr := range e {
			fieldErrors[fieldErr.Field()] = formatValidationError(fieldErr)
		}
		return errors.NewValidationError(fieldErrors, traceID), http.StatusBadRequest

	default:
		response, _ := errors.WrapSystemError(err, traceID)
		return response, response.GetHTTPStatus()
	}
}

// mapHTTPStatusToErrorCode picks the closest catalog code for a bare HTTP
// status raised inside echo (routing, method matching, body limits)
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity:
		return errors.ValidationGeneral
	case http.StatusUnauthorized:
		return errors.AuthMissingToken
	case http.StatusNotFound:
		return errors.UserNotFound
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusServiceUnavailable:
		return errors.SystemDatabaseError
	default:
		return errors.SystemInternalError
	}
}

// formatValidationError renders one field failure as a readable clause
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "expense_type":
		return "must be either 'expense' or 'income'"
	case "expense_date":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
