package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"expense-tracker-api/internal/dto"
	"expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with email, password, and personal information
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.TokenResponse "User created, token issued"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "Email already registered - USER_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Register(&req)
	if err != nil {
		if err == services.ErrUserAlreadyExists {
			return SendError(c, errors.UserAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, tokens)
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate user with email and password, receive a JWT access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials - AUTH_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001 or SYSTEM_002"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout acknowledges a logout. Access tokens are stateless and simply
// expire; the client discards its copy.
// @Summary Logout user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Logged out successfully",
	})
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.UserResponse} "Current user"
// @Failure 401 {object} errors.ErrorResponse "Missing or invalid token - AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "User not found - USER_001"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	profile, err := h.authService.GetProfile(userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: profile,
	})
}

// DeleteMe removes the authenticated user's account together with all of
// their categories and expenses
// @Summary Delete current user account
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse "Account deleted"
// @Failure 401 {object} errors.ErrorResponse "Missing or invalid token - AUTH_002"
// @Failure 404 {object} errors.ErrorResponse "User not found - USER_001"
// @Router /auth/me [delete]
func (h *AuthHandler) DeleteMe(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	if err := h.authService.DeleteAccount(userID); err != nil {
		if err == services.ErrUserNotFound {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Account deleted successfully",
	})
}
