package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/models"
)

var (
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrMissingToken   = errors.New("authorization token is required")
)

// AccessClaims carries the identity encoded into an access token.
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 signed access tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	duration time.Duration
}

// NewTokenService creates a token service from JWT configuration
func NewTokenService(cfg *config.JWTConfig) TokenServiceInterface {
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		duration: cfg.AccessTokenDuration,
	}
}

// GenerateAccessToken creates a signed access token for the given user.
// Returns the token string and its expiry time.
func (ts *TokenService) GenerateAccessToken(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, fmt.Errorf("cannot issue token for unsaved user")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ts.duration)

	claims := AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    ts.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateAccessToken parses and verifies a token string, returning its claims.
func (ts *TokenService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithIssuer(ts.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization header value.
func (ts *TokenService) ExtractTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrTokenMalformed
	}

	return parts[1], nil
}
