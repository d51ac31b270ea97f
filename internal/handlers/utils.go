package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uint, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return 0, ErrUnauthorized
	}

	userID, ok := userIDValue.(uint)
	if !ok || userID == 0 {
		return 0, ErrUnauthorized
	}

	return userID, nil
}

// getUintPathParam parses a numeric path parameter such as :id
func getUintPathParam(c echo.Context, name string) (uint, error) {
	param := c.Param(name)
	value, err := strconv.ParseUint(param, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return uint(value), nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}
