package middleware

import (
	stderrors "errors"

	"github.com/labstack/echo/v4"

	"expense-tracker-api/internal/errors"
	"expense-tracker-api/internal/handlers"
	"expense-tracker-api/internal/services"
)

// RequireAuth creates a middleware that requires a valid JWT access token.
// On success the authenticated user's ID and email are stored in the
// request context.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrTokenExpired) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
